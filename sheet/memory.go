// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory keeps worksheets in process memory
type Memory struct {
	mu     sync.RWMutex
	titles []string
	rows   map[string][][]string
}

func NewMemory(titles ...string) *Memory {
	m := &Memory{rows: make(map[string][][]string)}
	for _, title := range titles {
		m.titles = append(m.titles, title)
		m.rows[title] = nil
	}
	return m
}

func (m *Memory) WorksheetCount(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.titles), nil
}

func (m *Memory) EnsureWorksheet(ctx context.Context, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[title]; !ok {
		m.titles = append(m.titles, title)
		m.rows[title] = nil
	}
	return nil
}

func (m *Memory) Rows(ctx context.Context, title string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.rows[title]
	if !ok {
		return nil, fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out, nil
}

func (m *Memory) AppendRow(ctx context.Context, title string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.rows[title]
	if !ok {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	m.rows[title] = append(rows, slices.Clone(row))
	return nil
}

func (m *Memory) UpdateCell(ctx context.Context, title string, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.rows[title]
	if !ok {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	for len(rows) < row {
		rows = append(rows, nil)
	}
	rows[row-1] = setCell(rows[row-1], col, value)
	m.rows[title] = rows
	return nil
}

func (m *Memory) Clear(ctx context.Context, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[title]; !ok {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	m.rows[title] = nil
	return nil
}
