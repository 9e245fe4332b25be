// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestColumnName(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{10, "J"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, c := range cases {
		if got := columnName(c.col); got != c.want {
			t.Errorf("columnName(%d) = %q, want %q", c.col, got, c.want)
		}
	}
}

func TestCellAddress(t *testing.T) {
	got, err := cellAddress("질문", 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if want := "'질문'!J3"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	got, _ = cellAddress("Bob's", 1, 1)
	if want := "'Bob''s'!A1"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if _, err := cellAddress("질문", 1, 0); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Expected ErrInvalidCell, got %v", err)
	}
}

func TestWrapRangeError(t *testing.T) {
	notFound := &googleapi.Error{Code: http.StatusBadRequest, Message: "Unable to parse range: '응답'"}
	if err := wrapRangeError("응답", notFound); !errors.Is(err, ErrWorksheetNotFound) {
		t.Errorf("Expected ErrWorksheetNotFound, got %v", err)
	}

	forbidden := &googleapi.Error{Code: http.StatusForbidden, Message: "The caller does not have permission"}
	err := wrapRangeError("응답", forbidden)
	if errors.Is(err, ErrWorksheetNotFound) {
		t.Error("Permission errors must not map to ErrWorksheetNotFound")
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		t.Error("Expected the API error to stay in the chain")
	}
}
