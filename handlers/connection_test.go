// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/store"
	"github.com/danielhkuo/classpoll/testutil"
)

func TestConnectionCheck(t *testing.T) {
	seeded, _ := testutil.SetupTestStore(t)

	testCases := []struct {
		name           string
		store          *store.Store
		expectedStatus int
		expectedCount  int
		expectedLevel  string
	}{
		{"seeded spreadsheet", seeded, http.StatusOK, 2, models.BannerSuccess},
		{"unreachable spreadsheet", store.New(testutil.BrokenSheet{}), http.StatusBadGateway, 0, models.BannerWarning},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewConnectionHandler(tc.store)
			w := httptest.NewRecorder()
			h.Check(w, testutil.MakeRequest("GET", "/connection", nil, nil))
			testutil.AssertStatus(t, w, tc.expectedStatus)

			var resp models.ConnectionResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Worksheets != tc.expectedCount {
				t.Errorf("Expected %d worksheets, got %d", tc.expectedCount, resp.Worksheets)
			}
			if resp.Banner == nil || resp.Banner.Level != tc.expectedLevel {
				t.Errorf("Expected %s banner, got %+v", tc.expectedLevel, resp.Banner)
			}
		})
	}
}
