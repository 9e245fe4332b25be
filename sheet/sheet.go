// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"errors"
)

var (
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrInvalidCell       = errors.New("invalid cell address")
)

// Spreadsheet is the subset of a spreadsheet service both apps rely on.
// Rows and columns are 1-based, matching A1 notation.
type Spreadsheet interface {
	WorksheetCount(ctx context.Context) (int, error)
	EnsureWorksheet(ctx context.Context, title string) error
	Rows(ctx context.Context, title string) ([][]string, error)
	AppendRow(ctx context.Context, title string, row []string) error
	UpdateCell(ctx context.Context, title string, row, col int, value string) error
	Clear(ctx context.Context, title string) error
}

func checkCell(row, col int) error {
	if row < 1 || col < 1 {
		return ErrInvalidCell
	}
	return nil
}

// setCell returns cells with index col-1 set to value, padding with blanks
func setCell(cells []string, col int, value string) []string {
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	return cells
}
