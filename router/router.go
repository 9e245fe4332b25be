// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/classpoll/cliparse"
	"github.com/danielhkuo/classpoll/handlers"
	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/poller"
	"github.com/danielhkuo/classpoll/session"
	"github.com/danielhkuo/classpoll/store"
)

// NewAdminRouter serves the instructor's controller
func NewAdminRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	registerCommon(mux, st, "classpoll admin API v1")

	adminHandler := handlers.NewAdminHandler(st, cfg)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdminKey(cfg.AdminKey, h))
	}

	// Question activation
	mux.HandleFunc("GET /admin/questions", admin(adminHandler.ListQuestions))
	mux.HandleFunc("POST /admin/questions/{id}/activate", admin(adminHandler.Activate))
	mux.HandleFunc("POST /admin/questions/deactivate", admin(adminHandler.DeactivateAll))

	// Responses and results
	mux.HandleFunc("GET /admin/questions/{id}/responses", admin(adminHandler.ListResponses))
	mux.HandleFunc("GET /admin/questions/{id}/responses.csv", admin(adminHandler.ExportResponses))
	mux.HandleFunc("GET /admin/questions/{id}/results", admin(adminHandler.Results))
	mux.HandleFunc("GET /admin/results", admin(adminHandler.ActiveResults))

	// Setup
	mux.HandleFunc("POST /admin/seed", admin(adminHandler.Seed))
	mux.HandleFunc("GET /admin/qr.png", admin(adminHandler.QRCode))

	return mux
}

// NewVoteRouter serves participants
func NewVoteRouter(st *store.Store, feed *poller.Feed, sessions *session.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	registerCommon(mux, st, "classpoll vote API v1")

	voteHandler := handlers.NewVoteHandler(st, feed, sessions)

	// Session lifecycle
	mux.HandleFunc("GET /session", middleware.WithLogging(voteHandler.GetSession))
	mux.HandleFunc("POST /session", middleware.WithLogging(voteHandler.Identify))
	mux.HandleFunc("POST /session/nickname", middleware.WithLogging(voteHandler.RegenerateNickname))
	mux.HandleFunc("PUT /session/nickname", middleware.WithLogging(voteHandler.SetNickname))
	mux.HandleFunc("POST /session/reset", middleware.WithLogging(voteHandler.Reset))

	// Answering
	mux.HandleFunc("POST /session/answers", middleware.WithLogging(voteHandler.SubmitAnswer))
	mux.HandleFunc("GET /session/wait", middleware.WithLogging(voteHandler.Wait))
	mux.HandleFunc("GET /question", middleware.WithLogging(voteHandler.ActiveQuestion))

	return mux
}

func registerCommon(mux *http.ServeMux, st *store.Store, banner string) {
	connectionHandler := handlers.NewConnectionHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /connection", middleware.WithLogging(connectionHandler.Check))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(banner))
	})
}
