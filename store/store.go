// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/classpoll/sheet"
)

// Worksheet titles
const (
	QuestionSheet = "질문"
	ResponseSheet = "응답"
)

// TimestampFormat is the strftime layout of the response time column
const TimestampFormat = "%Y-%m-%d %H:%M:%S"

var (
	ErrHeaderMismatch   = errors.New("header mismatch")
	ErrNotInitialized   = errors.New("worksheet has no header row")
	ErrQuestionNotFound = errors.New("question not found")
)

// HeaderError describes the first column whose header differs from the
// expected layout.
type HeaderError struct {
	Sheet    string
	Column   int // 1-based
	Expected string
	Found    string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("worksheet %q column %d: expected header %q, found %q",
		e.Sheet, e.Column, e.Expected, e.Found)
}

func (e *HeaderError) Unwrap() error {
	return ErrHeaderMismatch
}

// Store reads and writes typed records on top of a spreadsheet.
// It holds no state of its own; every call goes to the spreadsheet.
type Store struct {
	sheet sheet.Spreadsheet
	now   func() time.Time
}

func New(s sheet.Spreadsheet) *Store {
	return &Store{sheet: s, now: time.Now}
}

// WithClock replaces the clock used to stamp responses
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WorksheetCount backs the connection test
func (s *Store) WorksheetCount(ctx context.Context) (int, error) {
	return s.sheet.WorksheetCount(ctx)
}

// load reads a worksheet and validates its header row
func (s *Store) load(ctx context.Context, title string, header []string) ([][]string, error) {
	rows, err := s.sheet.Rows(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%q: %w", title, ErrNotInitialized)
	}
	if err := checkHeader(title, rows[0], header); err != nil {
		return nil, err
	}
	return rows[1:], nil
}

func checkHeader(title string, got, want []string) error {
	for i, name := range want {
		found := ""
		if i < len(got) {
			found = strings.TrimSpace(got[i])
		}
		if found != name {
			return &HeaderError{Sheet: title, Column: i + 1, Expected: name, Found: found}
		}
	}
	return nil
}

// pad returns row extended with blanks to n cells
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
