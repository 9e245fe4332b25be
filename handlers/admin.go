// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/skip2/go-qrcode"

	"github.com/danielhkuo/classpoll/cliparse"
	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/session"
	"github.com/danielhkuo/classpoll/store"
	"github.com/danielhkuo/classpoll/tally"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

type AdminHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewAdminHandler(st *store.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg, now: time.Now}
}

// ListQuestions handles GET /admin/questions
// A spreadsheet failure is reported as a warning banner with an empty list
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.Questions(r.Context())
	if err != nil {
		slog.Warn("failed to load questions", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.QuestionsResponse{
			Questions: []models.Question{},
			Banner:    models.Warning(loadFailedMessage(err)),
		})
		return
	}

	resp := models.QuestionsResponse{Questions: questions}
	if active, ok := session.ActiveQuestion(questions); ok {
		resp.ActiveID = active.ID
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Activate handles POST /admin/questions/{id}/activate
func (h *AdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	deactivated, err := h.store.Activate(r.Context(), questionID)
	if err != nil {
		storeError(w, "activate", err)
		return
	}

	slog.Info("question activated", "question_id", questionID, "deactivated", deactivated)
	middleware.JSONResponse(w, http.StatusOK, models.ActivateResponse{
		ActiveID:    questionID,
		Deactivated: deactivated,
	})
}

// DeactivateAll handles POST /admin/questions/deactivate
func (h *AdminHandler) DeactivateAll(w http.ResponseWriter, r *http.Request) {
	deactivated, err := h.store.DeactivateAll(r.Context())
	if err != nil {
		storeError(w, "deactivate", err)
		return
	}

	slog.Info("all questions deactivated", "deactivated", deactivated)
	middleware.JSONResponse(w, http.StatusOK, models.DeactivateResponse{Deactivated: deactivated})
}

// ListResponses handles GET /admin/questions/{id}/responses
func (h *AdminHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	responses, err := h.store.Responses(r.Context(), questionID)
	if err != nil {
		storeError(w, "responses", err)
		return
	}

	now := h.now()
	views := make([]models.ResponseView, len(responses))
	for i, resp := range responses {
		views[i] = models.ResponseView{Response: resp}
		if ts, err := store.ParseTimestamp(resp.Timestamp); err == nil {
			views[i].Age = humanize.RelTime(ts, now, "ago", "from now")
		}
	}

	out := models.ResponsesResponse{
		QuestionID: questionID,
		Total:      len(views),
		Responses:  views,
	}
	if len(views) == 0 {
		out.Banner = models.Info("No responses yet")
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// ExportResponses handles GET /admin/questions/{id}/responses.csv
func (h *AdminHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	responses, err := h.store.Responses(r.Context(), questionID)
	if err != nil {
		storeError(w, "export", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "responses-" + questionID + ".csv",
	}))

	cw := csv.NewWriter(w)
	cw.Write(store.ResponseHeader)
	for _, resp := range responses {
		cw.Write([]string{resp.Timestamp, resp.StudentID, resp.Name, resp.QuestionID, resp.Answer, resp.SessionID})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("failed to write csv export", "question_id", questionID, "error", err)
	}
}

// Results handles GET /admin/questions/{id}/results
func (h *AdminHandler) Results(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.Question(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, "results", err)
		return
	}
	h.writeResults(w, r, q)
}

// ActiveResults handles GET /admin/results
// Returns an info banner when no question is active
func (h *AdminHandler) ActiveResults(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.Questions(r.Context())
	if err != nil {
		storeError(w, "results", err)
		return
	}

	q, ok := session.ActiveQuestion(questions)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
			Banner: models.Info("No active question"),
		})
		return
	}
	h.writeResults(w, r, q)
}

func (h *AdminHandler) writeResults(w http.ResponseWriter, r *http.Request, q models.Question) {
	responses, err := h.store.Responses(r.Context(), q.ID)
	if err != nil {
		storeError(w, "results", err)
		return
	}

	topN := tally.DefaultTopWords
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		topN = n
	}

	middleware.JSONResponse(w, http.StatusOK, tally.Summarize(q, responses, topN))
}

// Seed handles POST /admin/seed
// Overwrites both worksheets with headers and the sample questions
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Seed(r.Context())
	if err != nil {
		slog.Error("failed to seed spreadsheet", "error", err)
		middleware.JSONResponse(w, http.StatusBadGateway, models.SeedResponse{
			Banner: models.Warning("Seeding failed: " + err.Error()),
		})
		return
	}

	slog.Info("spreadsheet seeded", "questions", n)
	middleware.JSONResponse(w, http.StatusOK, models.SeedResponse{
		Questions: n,
		Banner:    models.Success("Sample questions written"),
	})
}

// QRCode handles GET /admin/qr.png
// Encodes the configured vote URL for projection in the classroom
func (h *AdminHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if h.cfg.VoteURL == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "VOTE_URL is not configured")
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			middleware.ErrorResponse(w, http.StatusBadRequest, "size must be between 128 and 1024")
			return
		}
		size = n
	}

	png, err := qrcode.Encode(h.cfg.VoteURL, qrcode.Medium, size)
	if err != nil {
		slog.Error("failed to encode qr code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
