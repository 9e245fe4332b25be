// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/classpoll/models"
)

// DefaultTopWords is the ranking length used when callers pass topN <= 0
const DefaultTopWords = 20

// minTokenRunes drops single-letter tokens
const minTokenRunes = 2

var stopwords = map[string]struct{}{
	// English
	"the": {}, "and": {}, "or": {}, "is": {}, "are": {}, "was": {}, "to": {},
	"of": {}, "in": {}, "on": {}, "it": {}, "for": {}, "with": {}, "this": {},
	"that": {}, "an": {},
	// Korean
	"그리고": {}, "그래서": {}, "하지만": {}, "그런데": {}, "그": {}, "이": {}, "저": {},
	"것": {}, "수": {}, "등": {}, "및": {}, "좀": {}, "너무": {}, "정말": {}, "진짜": {},
	"있다": {}, "없다": {}, "같다": {}, "합니다": {}, "했다": {},
}

// CountChoices counts occurrences of each answer value
func CountChoices(answers []string) map[string]int {
	counts := make(map[string]int)
	for _, a := range answers {
		counts[a]++
	}
	return counts
}

// ChoiceCounts tallies multiple-choice responses. Configured options come
// first in option order, including those nobody picked; answers that match no
// option (the option text was edited after voting) follow, sorted by text.
func ChoiceCounts(q models.Question, responses []models.Response) []models.OptionCount {
	answers := make([]string, len(responses))
	for i, r := range responses {
		answers[i] = r.Answer
	}
	counts := CountChoices(answers)

	out := make([]models.OptionCount, 0, len(q.Options)+len(counts))
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			continue
		}
		seen[opt] = true
		out = append(out, models.OptionCount{Option: opt, Count: counts[opt]})
	}

	var extra []string
	for answer := range counts {
		if !seen[answer] {
			extra = append(extra, answer)
		}
	}
	sort.Strings(extra)
	for _, answer := range extra {
		out = append(out, models.OptionCount{Option: answer, Count: counts[answer]})
	}
	return out
}

// Tokenize normalizes s to NFC, lower-cases it and splits on anything that is
// not a letter or digit. Short tokens and stopwords are dropped.
func Tokenize(s string) []string {
	s = strings.ToLower(norm.NFC.String(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenRunes {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// RankWords ranks the words of free-text answers by frequency, highest
// first, ties broken alphabetically. At most topN words are returned.
func RankWords(answers []string, topN int) []models.WordCount {
	if topN <= 0 {
		topN = DefaultTopWords
	}

	counts := make(map[string]int)
	for _, a := range answers {
		for _, tok := range Tokenize(a) {
			counts[tok]++
		}
	}

	ranked := make([]models.WordCount, 0, len(counts))
	for word, n := range counts {
		ranked = append(ranked, models.WordCount{Word: word, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Summarize builds the results payload for one question
func Summarize(q models.Question, responses []models.Response, topN int) models.ResultsResponse {
	result := models.ResultsResponse{
		Question: &q,
		Total:    len(responses),
	}
	if q.IsMultipleChoice() {
		result.Choices = ChoiceCounts(q, responses)
	} else {
		answers := make([]string, len(responses))
		for i, r := range responses {
			answers[i] = r.Answer
		}
		result.Words = RankWords(answers, topN)
	}
	if len(responses) == 0 {
		result.Banner = models.Info("No responses yet")
	}
	return result
}
