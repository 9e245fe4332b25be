// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/sheet"
	"github.com/danielhkuo/classpoll/store"
	"github.com/danielhkuo/classpoll/testutil"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *store.Store) {
	t.Helper()
	st, _ := testutil.SetupTestStore(t)
	return NewAdminHandler(st, testutil.GetTestConfig()), st
}

func adminRequest(method, path, id string) *http.Request {
	req := testutil.MakeRequest(method, path, nil, nil)
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func TestListQuestions(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.ActivateTestQuestion(t, st, "Q2")

	w := httptest.NewRecorder()
	h.ListQuestions(w, adminRequest("GET", "/admin/questions", ""))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.QuestionsResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(resp.Questions))
	}
	if resp.ActiveID != "Q2" {
		t.Errorf("Expected active Q2, got %q", resp.ActiveID)
	}
	if resp.Banner != nil {
		t.Errorf("Expected no banner, got %+v", resp.Banner)
	}
}

func TestListQuestions_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		sheet    sheet.Spreadsheet
		contains string
	}{
		{"unreachable spreadsheet", testutil.BrokenSheet{}, "unavailable"},
		{"missing worksheets", sheet.NewMemory(), "/admin/seed"},
		{"empty worksheet", sheet.NewMemory(store.QuestionSheet), "/admin/seed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAdminHandler(store.New(tc.sheet), testutil.GetTestConfig())
			w := httptest.NewRecorder()
			h.ListQuestions(w, adminRequest("GET", "/admin/questions", ""))

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.QuestionsResponse
			testutil.AssertJSON(t, w, &resp)

			if len(resp.Questions) != 0 {
				t.Errorf("Expected empty list, got %d", len(resp.Questions))
			}
			if resp.Banner == nil || resp.Banner.Level != models.BannerWarning {
				t.Fatalf("Expected warning banner, got %+v", resp.Banner)
			}
			if !strings.Contains(resp.Banner.Message, tc.contains) {
				t.Errorf("Expected banner to mention %q, got %q", tc.contains, resp.Banner.Message)
			}
		})
	}
}

func TestActivate(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"first question", "Q1", http.StatusOK},
		{"second question", "Q2", http.StatusOK},
		{"unknown question", "Q99", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newAdminHandler(t)
			w := httptest.NewRecorder()
			h.Activate(w, adminRequest("POST", "/admin/questions/"+tc.id+"/activate", tc.id))
			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusOK {
				var resp models.ActivateResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ActiveID != tc.id {
					t.Errorf("Expected active %s, got %s", tc.id, resp.ActiveID)
				}
			}
		})
	}
}

func TestActivate_SwitchesQuestion(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.ActivateTestQuestion(t, st, "Q1")

	w := httptest.NewRecorder()
	h.Activate(w, adminRequest("POST", "/admin/questions/Q2/activate", "Q2"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ActivateResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deactivated != 1 {
		t.Errorf("Expected Q1 to be deactivated, got %d", resp.Deactivated)
	}

	w = httptest.NewRecorder()
	h.ListQuestions(w, adminRequest("GET", "/admin/questions", ""))
	var list models.QuestionsResponse
	testutil.AssertJSON(t, w, &list)
	active := 0
	for _, q := range list.Questions {
		if q.Active {
			active++
		}
	}
	if active != 1 || list.ActiveID != "Q2" {
		t.Errorf("Expected only Q2 active, got %d active, active id %q", active, list.ActiveID)
	}
}

func TestActivate_Uninitialized(t *testing.T) {
	h := NewAdminHandler(store.New(sheet.NewMemory()), testutil.GetTestConfig())
	w := httptest.NewRecorder()
	h.Activate(w, adminRequest("POST", "/admin/questions/Q1/activate", "Q1"))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestActivate_Unreachable(t *testing.T) {
	h := NewAdminHandler(store.New(testutil.BrokenSheet{}), testutil.GetTestConfig())
	w := httptest.NewRecorder()
	h.Activate(w, adminRequest("POST", "/admin/questions/Q1/activate", "Q1"))
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestDeactivateAll(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.ActivateTestQuestion(t, st, "Q1")

	for i, want := range []int{1, 0} {
		w := httptest.NewRecorder()
		h.DeactivateAll(w, adminRequest("POST", "/admin/questions/deactivate", ""))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.DeactivateResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Deactivated != want {
			t.Errorf("Call %d: expected %d deactivated, got %d", i+1, want, resp.Deactivated)
		}
	}
}

func TestListResponses(t *testing.T) {
	h, st := newAdminHandler(t)
	recorded := time.Date(2025, 3, 2, 9, 0, 0, 0, time.Local)
	st.WithClock(func() time.Time { return recorded })
	h.now = func() time.Time { return recorded.Add(3 * time.Minute) }

	testutil.AddTestResponses(t, st, "Q1", "Python", "Java")
	testutil.AddTestResponses(t, st, "Q2", "재귀 함수")

	w := httptest.NewRecorder()
	h.ListResponses(w, adminRequest("GET", "/admin/questions/Q1/responses", "Q1"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResponsesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Total != 2 || len(resp.Responses) != 2 {
		t.Fatalf("Expected 2 responses, got %d", resp.Total)
	}
	for _, r := range resp.Responses {
		if r.QuestionID != "Q1" {
			t.Errorf("Response for wrong question: %+v", r)
		}
		if r.Age != "3 minutes ago" {
			t.Errorf("Expected age '3 minutes ago', got %q", r.Age)
		}
	}
}

func TestListResponses_Empty(t *testing.T) {
	h, _ := newAdminHandler(t)
	w := httptest.NewRecorder()
	h.ListResponses(w, adminRequest("GET", "/admin/questions/Q2/responses", "Q2"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResponsesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Total != 0 || resp.Banner == nil || resp.Banner.Level != models.BannerInfo {
		t.Errorf("Expected empty list with info banner, got %+v", resp)
	}
}

func TestExportResponses(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.AddTestResponses(t, st, "Q2", "쉼표, 포함", "두 번째")

	w := httptest.NewRecorder()
	h.ExportResponses(w, adminRequest("GET", "/admin/questions/Q2/responses.csv", "Q2"))
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "responses-Q2.csv") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(records))
	}
	if records[0][0] != store.ResponseHeader[0] {
		t.Errorf("Expected header row, got %v", records[0])
	}
	if records[1][4] != "쉼표, 포함" {
		t.Errorf("Expected quoted answer to survive, got %q", records[1][4])
	}
}

func TestExportResponses_Filename(t *testing.T) {
	h, _ := newAdminHandler(t)

	tests := []struct {
		id       string
		filename string
	}{
		{"Q2", "responses-Q2.csv"},
		{`Q"2; x=y`, `responses-Q"2; x=y.csv`},
		{"질문 3", "responses-질문 3.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ExportResponses(w, adminRequest("GET", "/admin/questions/x/responses.csv", tt.id))
			testutil.AssertStatus(t, w, http.StatusOK)

			disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
			if err != nil {
				t.Fatalf("Content-Disposition does not parse: %v", err)
			}
			if disposition != "attachment" {
				t.Errorf("Expected attachment, got %q", disposition)
			}
			if params["filename"] != tt.filename {
				t.Errorf("Expected filename %q, got %q", tt.filename, params["filename"])
			}
			if _, extra := params["x"]; extra {
				t.Error("Expected the id to stay inside the filename parameter")
			}
		})
	}
}

func TestResults_MultipleChoice(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.AddTestResponses(t, st, "Q1", "Python", "Java", "Python")

	w := httptest.NewRecorder()
	h.Results(w, adminRequest("GET", "/admin/questions/Q1/results", "Q1"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Total != 3 {
		t.Errorf("Expected 3 total, got %d", resp.Total)
	}
	if len(resp.Choices) != 5 {
		t.Fatalf("Expected one count per option, got %d", len(resp.Choices))
	}
	counts := map[string]int{}
	for _, c := range resp.Choices {
		counts[c.Option] = c.Count
	}
	if counts["Python"] != 2 || counts["Java"] != 1 || counts["C++"] != 0 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestResults_FreeText(t *testing.T) {
	h, st := newAdminHandler(t)
	testutil.AddTestResponses(t, st, "Q2", "red blue", "blue green", "blue")

	w := httptest.NewRecorder()
	h.Results(w, adminRequest("GET", "/admin/questions/Q2/results?top=2", "Q2"))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Words) != 2 {
		t.Fatalf("Expected top 2 words, got %v", resp.Words)
	}
	if resp.Words[0].Word != "blue" || resp.Words[0].Count != 3 {
		t.Errorf("Expected blue first, got %+v", resp.Words[0])
	}
}

func TestResults_Errors(t *testing.T) {
	h, _ := newAdminHandler(t)

	w := httptest.NewRecorder()
	h.Results(w, adminRequest("GET", "/admin/questions/Q9/results", "Q9"))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = httptest.NewRecorder()
	h.Results(w, adminRequest("GET", "/admin/questions/Q2/results?top=zero", "Q2"))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestActiveResults(t *testing.T) {
	h, st := newAdminHandler(t)

	w := httptest.NewRecorder()
	h.ActiveResults(w, adminRequest("GET", "/admin/results", ""))
	testutil.AssertStatus(t, w, http.StatusOK)
	var none models.ResultsResponse
	testutil.AssertJSON(t, w, &none)
	if none.Question != nil || none.Banner == nil || none.Banner.Level != models.BannerInfo {
		t.Errorf("Expected info banner without question, got %+v", none)
	}

	testutil.ActivateTestQuestion(t, st, "Q1")
	testutil.AddTestResponses(t, st, "Q1", "기타")

	w = httptest.NewRecorder()
	h.ActiveResults(w, adminRequest("GET", "/admin/results", ""))
	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Question == nil || resp.Question.ID != "Q1" || resp.Total != 1 {
		t.Errorf("Expected results for Q1, got %+v", resp)
	}
}

func TestSeed(t *testing.T) {
	mem := sheet.NewMemory()
	h := NewAdminHandler(store.New(mem), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.Seed(w, adminRequest("POST", "/admin/seed", ""))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SeedResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Questions != 2 || resp.Banner == nil || resp.Banner.Level != models.BannerSuccess {
		t.Errorf("Unexpected seed response %+v", resp)
	}
	if n, _ := mem.WorksheetCount(context.Background()); n != 2 {
		t.Errorf("Expected 2 worksheets, got %d", n)
	}

	broken := NewAdminHandler(store.New(testutil.BrokenSheet{}), testutil.GetTestConfig())
	w = httptest.NewRecorder()
	broken.Seed(w, adminRequest("POST", "/admin/seed", ""))
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestQRCode(t *testing.T) {
	h, _ := newAdminHandler(t)

	w := httptest.NewRecorder()
	h.QRCode(w, adminRequest("GET", "/admin/qr.png", ""))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected image/png, got %q", w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG signature")
	}

	w = httptest.NewRecorder()
	h.QRCode(w, adminRequest("GET", "/admin/qr.png?size=10", ""))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	cfg := testutil.GetTestConfig()
	cfg.VoteURL = ""
	unset := NewAdminHandler(h.store, cfg)
	w = httptest.NewRecorder()
	unset.QRCode(w, adminRequest("GET", "/admin/qr.png", ""))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
