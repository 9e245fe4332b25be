// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the two classpoll applications.

# Route Registration

Each role gets its own http.ServeMux:

	mux := router.NewAdminRouter(st, cfg)
	mux := router.NewVoteRouter(st, feed, sessions)

The roles never call each other; they share only the spreadsheet.

# Endpoints

Both roles:

	GET /health
	GET /connection
	GET /

Admin (requires X-Admin-Key):

	GET  /admin/questions
	POST /admin/questions/{id}/activate
	POST /admin/questions/deactivate
	GET  /admin/questions/{id}/responses
	GET  /admin/questions/{id}/responses.csv
	GET  /admin/questions/{id}/results
	GET  /admin/results
	POST /admin/seed
	GET  /admin/qr.png

Vote (session via X-Session-ID or cookie):

	GET  /session
	POST /session
	POST /session/nickname
	PUT  /session/nickname
	POST /session/reset
	POST /session/answers
	GET  /session/wait
	GET  /question

# Middleware

All routes except /health and / are wrapped with middleware.WithLogging.
Admin routes are additionally wrapped with middleware.RequireAdminKey.
The whole mux is wrapped with middleware.CORS in main.
*/
package router
