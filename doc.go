// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the classpoll servers.

classpoll is a classroom live-polling tool. The instructor activates one
question at a time; students open the vote page on their phones, identify
themselves and answer the active question. A spreadsheet with a question
worksheet and a response worksheet is the only shared state.

# Starting the Server

One binary runs either role:

	ADMIN_KEY=... go run . -app admin -store google -sheet <id> -credentials sa.json
	go run . -app vote -store google -sheet <id> -credentials sa.json -p 3319

For a local classroom without a Google account:

	go run . -app admin -store sqlite -d classpoll.db -admin-key dev
	go run . -app vote -store sqlite -d classpoll.db -p 3319

-store memory keeps everything in process and seeds the sample questions; it
only makes sense for demos since admin and vote then no longer share state.

# Configuration

See package cliparse. A .env file in the working directory is loaded first.

# Architecture

  - sheet: Spreadsheet interface with Google Sheets, SQL and memory backends
  - store: typed question and response records over the worksheets
  - tally: choice counts and word ranking
  - session: participant sessions and answer validation
  - poller: scheduled question refresh and change notification
  - handlers, router, middleware: HTTP surface
  - auth: admin key check and session ids
  - db: schema for the SQL backend
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
