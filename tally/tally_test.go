// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/classpoll/models"
)

func responses(answers ...string) []models.Response {
	out := make([]models.Response, len(answers))
	for i, a := range answers {
		out[i] = models.Response{QuestionID: "Q1", Answer: a}
	}
	return out
}

func TestCountChoices(t *testing.T) {
	got := CountChoices([]string{"A", "B", "A", "A"})
	want := map[string]int{"A": 3, "B": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountChoices = %v, want %v", got, want)
	}

	if got := CountChoices(nil); len(got) != 0 {
		t.Errorf("Expected empty map, got %v", got)
	}
}

func TestChoiceCounts(t *testing.T) {
	q := models.Question{
		ID:      "Q1",
		Type:    models.TypeMultipleChoice,
		Options: []string{"Python", "JavaScript", "Java"},
	}

	got := ChoiceCounts(q, responses("Java", "Python", "Java", "Rust", "Go"))
	want := []models.OptionCount{
		{Option: "Python", Count: 1},
		{Option: "JavaScript", Count: 0},
		{Option: "Java", Count: 2},
		{Option: "Go", Count: 1},
		{Option: "Rust", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChoiceCounts =\n %v\nwant\n %v", got, want)
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Blue sky", []string{"blue", "sky"}},
		{"a b c", []string{}},
		{"재귀 함수, 그리고 포인터!", []string{"재귀", "함수", "포인터"}},
		{"the cat and THE dog", []string{"cat", "dog"}},
		{"", []string{}},
	}
	for _, c := range cases {
		got := Tokenize(c.in)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTokenize_NormalizesDecomposedHangul(t *testing.T) {
	// "한글" written as conjoining jamo (NFD)
	decomposed := "\u1112\u1161\u11ab\u1100\u1173\u11af"
	got := Tokenize(decomposed)
	if len(got) != 1 || got[0] != "한글" {
		t.Errorf("Expected composed token 한글, got %q", got)
	}
}

func TestRankWords(t *testing.T) {
	got := RankWords([]string{"blue sky", "blue ocean", "green grass"}, 0)
	if len(got) != 5 {
		t.Fatalf("Expected 5 words, got %v", got)
	}
	if got[0].Word != "blue" || got[0].Count != 2 {
		t.Errorf("Expected blue ranked first with 2, got %+v", got[0])
	}
	for _, wc := range got[1:] {
		if wc.Count != 1 {
			t.Errorf("Expected count 1 for %q, got %d", wc.Word, wc.Count)
		}
	}
	// ties are alphabetical
	wantOrder := []string{"blue", "grass", "green", "ocean", "sky"}
	for i, w := range wantOrder {
		if got[i].Word != w {
			t.Errorf("Position %d: expected %q, got %q", i, w, got[i].Word)
		}
	}
}

func TestRankWords_TopN(t *testing.T) {
	got := RankWords([]string{"one two three four", "two three four", "three four", "four"}, 2)
	want := []models.WordCount{{Word: "four", Count: 4}, {Word: "three", Count: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankWords = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	mc := models.Question{ID: "Q1", Type: models.TypeMultipleChoice, Options: []string{"A", "B"}}
	res := Summarize(mc, responses("A", "B", "A", "A"), 0)
	if res.Total != 4 || len(res.Choices) != 2 || res.Words != nil {
		t.Errorf("Unexpected multiple-choice summary: %+v", res)
	}
	if res.Choices[0].Count != 3 || res.Choices[1].Count != 1 {
		t.Errorf("Unexpected counts: %v", res.Choices)
	}

	ft := models.Question{ID: "Q2", Type: models.TypeFreeText}
	res = Summarize(ft, nil, 0)
	if res.Total != 0 || res.Banner == nil || res.Banner.Level != models.BannerInfo {
		t.Errorf("Expected info banner for empty results, got %+v", res)
	}
}
