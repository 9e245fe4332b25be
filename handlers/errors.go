// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/sheet"
	"github.com/danielhkuo/classpoll/store"
)

// storeError answers a failed spreadsheet call. Layout problems the admin
// can fix by re-seeding are 409; anything else is treated as an upstream
// failure.
func storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, store.ErrHeaderMismatch),
		errors.Is(err, store.ErrNotInitialized),
		errors.Is(err, sheet.ErrWorksheetNotFound):
		slog.Warn("spreadsheet not initialized", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusConflict, err.Error()+"; run POST /admin/seed")
	default:
		slog.Error("spreadsheet call failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Spreadsheet error")
	}
}

// loadFailedMessage is shown in place of data the spreadsheet could not return
func loadFailedMessage(err error) string {
	if errors.Is(err, store.ErrHeaderMismatch) ||
		errors.Is(err, store.ErrNotInitialized) ||
		errors.Is(err, sheet.ErrWorksheetNotFound) {
		return "Could not load questions (" + err.Error() + "). Initialize the sheet with POST /admin/seed."
	}
	return "Could not load questions: " + err.Error()
}
