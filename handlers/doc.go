// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the classpoll API.

# Handler Types

Each handler is a struct built around a *store.Store:

  - AdminHandler: question activation, responses, results, seeding, QR code
  - VoteHandler: participant sessions, answer submission, long polling
  - ConnectionHandler: spreadsheet connection test

	adminHandler := handlers.NewAdminHandler(st, cfg)
	voteHandler := handlers.NewVoteHandler(st, feed, sessions)

# Admin Flow

	GET  /admin/questions                    → ListQuestions
	POST /admin/questions/{id}/activate      → Activate (exactly one active)
	POST /admin/questions/deactivate         → DeactivateAll
	GET  /admin/questions/{id}/responses     → ListResponses
	GET  /admin/questions/{id}/responses.csv → ExportResponses
	GET  /admin/questions/{id}/results       → Results
	GET  /admin/results                      → ActiveResults
	POST /admin/seed                         → Seed
	GET  /admin/qr.png                       → QRCode

Admin operations require the X-Admin-Key header (see middleware).

# Participant Flow

	GET  /session          → GetSession (starts a session, sets the cookie)
	POST /session          → Identify
	POST /session/answers  → SubmitAnswer
	GET  /session/wait     → Wait (long poll on the active question)
	POST /session/reset    → Reset

The participant is identified by the X-Session-ID header or the
classpoll_session cookie. Submissions are validated against the active
question of the latest refresh; a question that was deactivated in the
meantime answers 409.

# Failures

Spreadsheet read failures in listing views are shown as warning banners and
never fail the page. Failed writes return an error status and change nothing,
so the client may retry.
*/
package handlers
