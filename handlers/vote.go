// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/poller"
	"github.com/danielhkuo/classpoll/session"
	"github.com/danielhkuo/classpoll/store"
)

const (
	defaultWait = 25 * time.Second
	maxWait     = 55 * time.Second
)

type VoteHandler struct {
	store    *store.Store
	feed     *poller.Feed
	sessions *session.Registry
}

func NewVoteHandler(st *store.Store, feed *poller.Feed, sessions *session.Registry) *VoteHandler {
	return &VoteHandler{store: st, feed: feed, sessions: sessions}
}

// current returns the caller's session, creating and announcing a new one
// when the request carries none
func (h *VoteHandler) current(w http.ResponseWriter, r *http.Request) *session.Session {
	if s, ok := h.sessions.Get(middleware.SessionID(r)); ok {
		return s
	}
	s := h.sessions.Create()
	middleware.SetSessionCookie(w, s.ID())
	slog.Info("session started", "session_id", s.ID(), "remote", middleware.GetClientIP(r))
	return s
}

// existing returns the caller's session or answers 401
func (h *VoteHandler) existing(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.sessions.Get(middleware.SessionID(r))
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session not found; start again with GET /session")
		return nil, false
	}
	return s, true
}

func viewFor(s *session.Session, snap poller.Snapshot) models.SessionView {
	if snap.Err != nil {
		v := s.View(nil)
		v.Banner = models.Warning("Could not load the current question. Retrying shortly.")
		v.Version = snap.Version
		return v
	}

	var v models.SessionView
	if q, ok := snap.Active(); ok {
		v = s.View(&q)
	} else {
		v = s.View(nil)
	}
	v.Version = snap.Version
	return v
}

// GetSession handles GET /session
// Starts a session when the request has none
func (h *VoteHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := h.current(w, r)
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, h.feed.Current(r.Context())))
}

// Identify handles POST /session
// Accepts a student id and name, or nickname mode with an optional nickname
func (h *VoteHandler) Identify(w http.ResponseWriter, r *http.Request) {
	var req models.IdentifyRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s := h.current(w, r)
	err := s.Identify(models.Identity{
		StudentID:    req.StudentID,
		Name:         req.Name,
		Nickname:     req.Nickname,
		NicknameMode: req.NicknameMode,
	})
	if errors.Is(err, session.ErrInvalidIdentity) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and name are required")
		return
	}
	if err != nil {
		slog.Error("failed to identify", "session_id", s.ID(), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to identify")
		return
	}

	slog.Info("participant identified", "session_id", s.ID(), "nickname_mode", req.NicknameMode)
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, h.feed.Current(r.Context())))
}

// RegenerateNickname handles POST /session/nickname
func (h *VoteHandler) RegenerateNickname(w http.ResponseWriter, r *http.Request) {
	s, ok := h.existing(w, r)
	if !ok {
		return
	}
	s.RegenerateNickname()
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, h.feed.Current(r.Context())))
}

// SetNickname handles PUT /session/nickname
func (h *VoteHandler) SetNickname(w http.ResponseWriter, r *http.Request) {
	s, ok := h.existing(w, r)
	if !ok {
		return
	}

	var req models.NicknameRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.SetNickname(req.Nickname); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, h.feed.Current(r.Context())))
}

// SubmitAnswer handles POST /session/answers
// The answer is checked against the question that is active right now, not
// the one the participant was shown
func (h *VoteHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.existing(w, r)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.feed.Current(r.Context())
	if snap.Err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Could not load the current question. Please try again.")
		return
	}
	active, ok := snap.Active()
	if !ok || active.ID != req.QuestionID {
		middleware.ErrorResponse(w, http.StatusConflict, "Question is no longer active")
		return
	}

	_, err := s.Submit(r.Context(), h.store, active, req.Answer)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotIdentified):
		middleware.ErrorResponse(w, http.StatusForbidden, "Identify before answering")
		return
	case errors.Is(err, session.ErrAlreadyAnswered):
		middleware.ErrorResponse(w, http.StatusConflict, "Question already answered")
		return
	case errors.Is(err, session.ErrInvalidChoice):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Answer must be one of the options")
		return
	case errors.Is(err, session.ErrEmptyAnswer):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Answer is empty")
		return
	default:
		slog.Error("failed to record answer", "session_id", s.ID(), "question_id", active.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to save answer. Please try again.")
		return
	}

	slog.Info("answer recorded", "session_id", s.ID(), "question_id", active.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAnswerResponse{
		QuestionID: active.ID,
		Message:    "Answer recorded",
	})
}

// Reset handles POST /session/reset
// Discards the session and starts an unidentified one with a new id
func (h *VoteHandler) Reset(w http.ResponseWriter, r *http.Request) {
	old := middleware.SessionID(r)
	s := h.sessions.Reset(old)
	middleware.SetSessionCookie(w, s.ID())

	slog.Info("session reset", "old_session_id", old, "session_id", s.ID())
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, h.feed.Current(r.Context())))
}

// Wait handles GET /session/wait?version=N&timeout=25s
// Blocks until the active question differs from the one seen at version,
// the timeout passes or the session ends
func (h *VoteHandler) Wait(w http.ResponseWriter, r *http.Request) {
	s, ok := h.existing(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	version, err := strconv.ParseUint(query.Get("version"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "version is required")
		return
	}

	timeout := defaultWait
	if raw := query.Get("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "timeout must be a positive duration")
			return
		}
		timeout = min(d, maxWait)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()
	snap := h.feed.Wait(ctx, version, s.Done())

	select {
	case <-s.Done():
		middleware.ErrorResponse(w, http.StatusGone, "Session ended")
		return
	default:
	}
	middleware.JSONResponse(w, http.StatusOK, viewFor(s, snap))
}

// ActiveQuestion handles GET /question
// Public view of the active question, no session needed
func (h *VoteHandler) ActiveQuestion(w http.ResponseWriter, r *http.Request) {
	snap := h.feed.Current(r.Context())
	if snap.Err != nil {
		middleware.JSONResponse(w, http.StatusOK, models.ActiveQuestionResponse{
			Banner: models.Warning("Could not load the current question. Retrying shortly."),
		})
		return
	}

	q, ok := snap.Active()
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.ActiveQuestionResponse{
			Banner: models.Info("Waiting for the next question"),
		})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ActiveQuestionResponse{Question: &q})
}
