// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the tables backing the SQL spreadsheet.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Statements are portable between sqlite and postgres: no server-side
// defaults, plain TEXT/INTEGER columns.
const schema = `
-- Worksheets
CREATE TABLE IF NOT EXISTS worksheet (
    title TEXT PRIMARY KEY,
    position INTEGER NOT NULL
);

-- Rows, cells stored as a JSON array of strings
CREATE TABLE IF NOT EXISTS sheet_row (
    worksheet TEXT NOT NULL REFERENCES worksheet(title) ON DELETE CASCADE,
    row_num INTEGER NOT NULL CHECK (row_num > 0),
    cells TEXT NOT NULL,
    PRIMARY KEY (worksheet, row_num)
);

CREATE INDEX IF NOT EXISTS idx_sheet_row_worksheet ON sheet_row(worksheet);
`
