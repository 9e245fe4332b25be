// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/store"
)

type ConnectionHandler struct {
	store *store.Store
}

func NewConnectionHandler(st *store.Store) *ConnectionHandler {
	return &ConnectionHandler{store: st}
}

// Check handles GET /connection
// Reports how many worksheets the spreadsheet has, or a warning banner
func (h *ConnectionHandler) Check(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.WorksheetCount(r.Context())
	if err != nil {
		slog.Warn("connection check failed", "error", err)
		middleware.JSONResponse(w, http.StatusBadGateway, models.ConnectionResponse{
			Banner: models.Warning("Connection failed: " + err.Error()),
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConnectionResponse{
		Worksheets: n,
		Banner:     models.Success("Connected; " + strconv.Itoa(n) + " worksheets"),
	})
}
