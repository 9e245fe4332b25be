// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sheet is the spreadsheet service client shared by both apps.

The spreadsheet is the only persisted state. Spreadsheet exposes just the
operations the apps perform: list worksheets, read all rows, append a row,
update a single cell, and clear a worksheet.

# Backends

Google Sheets, authenticated with service account JSON:

	s, err := sheet.NewGoogle(ctx, sheetID, credentialsJSON)

A spreadsheet emulated in SQL (sqlite or postgres, schema from package db):

	s := sheet.NewSQL(conn)

In process memory, for tests and demos:

	s := sheet.NewMemory("질문", "응답")

# Errors

Reading or writing an unknown worksheet returns an error wrapping
ErrWorksheetNotFound. Cells outside the sheet (row or column below 1) return
ErrInvalidCell.

# Concurrency

No backend serializes read-then-write sequences made by callers. Two writers
racing on the same cell resolve as last write wins, exactly like the hosted
spreadsheet.
*/
package sheet
