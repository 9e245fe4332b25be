// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation for the SQL spreadsheet backend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on sqlite (modernc.org/sqlite) and postgres (lib/pq).

# Tables

  - worksheet: one row per worksheet title, with its position
  - sheet_row: one row per spreadsheet row, cells as a JSON array

# Relationships

	worksheet 1──* sheet_row
*/
package db
