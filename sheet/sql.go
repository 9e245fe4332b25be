// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQL emulates a spreadsheet on top of the tables created by db.CreateSchema.
// Works with both the sqlite and postgres drivers.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func worksheetExists(ctx context.Context, q queryer, title string) error {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM worksheet WHERE title = $1`, title).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to query worksheet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	return nil
}

// lockWorksheet takes the worksheet row lock for the rest of tx, so writers to
// one worksheet run one at a time. Under read committed the statements after
// it see rows committed by the writer it waited for.
func lockWorksheet(ctx context.Context, tx *sql.Tx, title string) error {
	res, err := tx.ExecContext(ctx, `UPDATE worksheet SET position = position WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("failed to lock worksheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to lock worksheet: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", title, ErrWorksheetNotFound)
	}
	return nil
}

func (s *SQL) WorksheetCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM worksheet`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count worksheets: %w", err)
	}
	return n, nil
}

func (s *SQL) EnsureWorksheet(ctx context.Context, title string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = worksheetExists(ctx, tx, title)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrWorksheetNotFound) {
		return err
	}

	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM worksheet`).Scan(&position); err != nil {
		return fmt.Errorf("failed to count worksheets: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO worksheet (title, position)
		VALUES ($1, $2)
		ON CONFLICT (title) DO NOTHING
	`, title, position)
	if err != nil {
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	return tx.Commit()
}

func (s *SQL) Rows(ctx context.Context, title string) ([][]string, error) {
	if err := worksheetExists(ctx, s.db, title); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT row_num, cells
		FROM sheet_row
		WHERE worksheet = $1
		ORDER BY row_num
	`, title)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var rowNum int
		var raw string
		if err := rows.Scan(&rowNum, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		// keep positions aligned with row numbers when rows were skipped
		for len(out) < rowNum-1 {
			out = append(out, []string{})
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("row %d: failed to decode cells: %w", rowNum, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (s *SQL) AppendRow(ctx context.Context, title string, row []string) error {
	encoded, err := encodeCells(row)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockWorksheet(ctx, tx, title); err != nil {
		return err
	}

	var last int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(row_num), 0) FROM sheet_row WHERE worksheet = $1
	`, title).Scan(&last)
	if err != nil {
		return fmt.Errorf("failed to find last row: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sheet_row (worksheet, row_num, cells)
		VALUES ($1, $2, $3)
	`, title, last+1, encoded)
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return tx.Commit()
}

func (s *SQL) UpdateCell(ctx context.Context, title string, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockWorksheet(ctx, tx, title); err != nil {
		return err
	}

	var cells []string
	var raw string
	err = tx.QueryRowContext(ctx, `
		SELECT cells FROM sheet_row WHERE worksheet = $1 AND row_num = $2
	`, title, row).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("failed to query row: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return fmt.Errorf("row %d: failed to decode cells: %w", row, err)
		}
	}

	encoded, err := encodeCells(setCell(cells, col, value))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sheet_row (worksheet, row_num, cells)
		VALUES ($1, $2, $3)
		ON CONFLICT (worksheet, row_num) DO UPDATE SET cells = excluded.cells
	`, title, row, encoded)
	if err != nil {
		return fmt.Errorf("failed to update cell: %w", err)
	}
	return tx.Commit()
}

func (s *SQL) Clear(ctx context.Context, title string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockWorksheet(ctx, tx, title); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_row WHERE worksheet = $1`, title); err != nil {
		return fmt.Errorf("failed to clear worksheet: %w", err)
	}
	return tx.Commit()
}

func encodeCells(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return "", fmt.Errorf("failed to encode cells: %w", err)
	}
	return string(b), nil
}
