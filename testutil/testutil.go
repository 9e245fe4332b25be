// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/classpoll/cliparse"
	"github.com/danielhkuo/classpoll/db"
	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/sheet"
	"github.com/danielhkuo/classpoll/store"
)

// TestAdminKey is the admin key configured by GetTestConfig
const TestAdminKey = "test-admin-key"

// ErrSheetUnavailable is returned by every BrokenSheet call
var ErrSheetUnavailable = errors.New("spreadsheet unavailable")

// GetTestConfig returns a config for tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		App:             cliparse.AppVote,
		StoreType:       cliparse.StoreMemory,
		AdminKey:        TestAdminKey,
		VoteURL:         "http://localhost:3318/",
		RefreshInterval: 3 * time.Second,
		SessionTTL:      2 * time.Hour,
	}
}

// SetupTestStore returns a store over a seeded in-memory spreadsheet
func SetupTestStore(t *testing.T) (*store.Store, *sheet.Memory) {
	t.Helper()
	mem := sheet.NewMemory()
	st := store.New(mem)
	if _, err := st.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed test store: %v", err)
	}
	return st, mem
}

// SetupSQLiteStore returns a store over a seeded in-memory sqlite database
func SetupSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	st := store.New(sheet.NewSQL(conn))
	if _, err := st.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed test store: %v", err)
	}
	return st
}

// ActivateTestQuestion marks questionID as the only active question
func ActivateTestQuestion(t *testing.T, st *store.Store, questionID string) {
	t.Helper()
	if _, err := st.Activate(context.Background(), questionID); err != nil {
		t.Fatalf("Failed to activate %s: %v", questionID, err)
	}
}

// AddTestResponses appends one response per answer to questionID
func AddTestResponses(t *testing.T, st *store.Store, questionID string, answers ...string) {
	t.Helper()
	for i, answer := range answers {
		r := models.Response{
			StudentID:  "2025" + string(rune('A'+i)),
			Name:       "tester",
			QuestionID: questionID,
			Answer:     answer,
			SessionID:  "test-session",
		}
		if err := st.AppendResponse(context.Background(), r); err != nil {
			t.Fatalf("Failed to add response: %v", err)
		}
	}
}

// BrokenSheet fails every call, standing in for an unreachable spreadsheet
type BrokenSheet struct{}

func (BrokenSheet) WorksheetCount(context.Context) (int, error) {
	return 0, ErrSheetUnavailable
}

func (BrokenSheet) EnsureWorksheet(context.Context, string) error {
	return ErrSheetUnavailable
}

func (BrokenSheet) Rows(context.Context, string) ([][]string, error) {
	return nil, ErrSheetUnavailable
}

func (BrokenSheet) AppendRow(context.Context, string, []string) error {
	return ErrSheetUnavailable
}

func (BrokenSheet) UpdateCell(context.Context, string, int, int, string) error {
	return ErrSheetUnavailable
}

func (BrokenSheet) Clear(context.Context, string) error {
	return ErrSheetUnavailable
}

// MakeRequest creates an HTTP request with optional JSON body and headers
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
