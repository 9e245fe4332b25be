// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Google is a Spreadsheet backed by one Google Sheets document
type Google struct {
	srv           *sheets.Service
	spreadsheetID string
}

// NewGoogle authenticates with service account JSON credentials and returns a
// client bound to spreadsheetID.
func NewGoogle(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*Google, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Google{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (g *Google) titles(ctx context.Context) ([]string, error) {
	ss, err := g.srv.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func (g *Google) WorksheetCount(ctx context.Context) (int, error) {
	titles, err := g.titles(ctx)
	if err != nil {
		return 0, err
	}
	return len(titles), nil
}

func (g *Google) EnsureWorksheet(ctx context.Context, title string) error {
	titles, err := g.titles(ctx)
	if err != nil {
		return err
	}
	for _, t := range titles {
		if t == title {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := g.srv.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add worksheet %q: %w", title, err)
	}
	return nil
}

func (g *Google) Rows(ctx context.Context, title string) ([][]string, error) {
	vr, err := g.srv.Spreadsheets.Values.Get(g.spreadsheetID, quoteTitle(title)).Context(ctx).Do()
	if err != nil {
		return nil, wrapRangeError(title, err)
	}
	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (g *Google) AppendRow(ctx context.Context, title string, row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toValues(row)}}
	_, err := g.srv.Spreadsheets.Values.Append(g.spreadsheetID, quoteTitle(title)+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return wrapRangeError(title, err)
	}
	return nil
}

func (g *Google) UpdateCell(ctx context.Context, title string, row, col int, value string) error {
	addr, err := cellAddress(title, row, col)
	if err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = g.srv.Spreadsheets.Values.Update(g.spreadsheetID, addr, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return wrapRangeError(title, err)
	}
	return nil
}

func (g *Google) Clear(ctx context.Context, title string) error {
	_, err := g.srv.Spreadsheets.Values.Clear(g.spreadsheetID, quoteTitle(title), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return wrapRangeError(title, err)
	}
	return nil
}

func toValues(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// quoteTitle quotes a worksheet title for use in A1 notation
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// columnName converts a 1-based column index to letters (1 → A, 27 → AA)
func columnName(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

func cellAddress(title string, row, col int) (string, error) {
	if err := checkCell(row, col); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s%d", quoteTitle(title), columnName(col), row), nil
}

// wrapRangeError maps the API's "Unable to parse range" response, which is
// what an unknown worksheet title produces, to ErrWorksheetNotFound.
func wrapRangeError(title string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest &&
		strings.Contains(apiErr.Message, "Unable to parse range") {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	return fmt.Errorf("worksheet %q: %w", title, err)
}
