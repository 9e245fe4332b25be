// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/classpoll/models"
)

// SampleQuestions are written by Seed
var SampleQuestions = []models.Question{
	{
		ID:      "Q1",
		Prompt:  "가장 좋아하는 프로그래밍 언어는?",
		Type:    models.TypeMultipleChoice,
		Options: []string{"Python", "JavaScript", "Java", "C++", "기타"},
	},
	{
		ID:     "Q2",
		Prompt: "이 수업에서 가장 흥미로웠던 부분은?",
		Type:   models.TypeFreeText,
	},
}

// Seed clears both worksheets, creating them if needed, and writes the header
// rows plus SampleQuestions. Existing questions and responses are lost.
func (s *Store) Seed(ctx context.Context) (int, error) {
	questionRows := [][]string{QuestionHeader}
	for _, q := range SampleQuestions {
		questionRows = append(questionRows, questionRow(q))
	}

	if err := s.reset(ctx, QuestionSheet, questionRows); err != nil {
		return 0, err
	}
	if err := s.reset(ctx, ResponseSheet, [][]string{ResponseHeader}); err != nil {
		return 0, err
	}
	return len(SampleQuestions), nil
}

func (s *Store) reset(ctx context.Context, title string, rows [][]string) error {
	if err := s.sheet.EnsureWorksheet(ctx, title); err != nil {
		return fmt.Errorf("failed to create worksheet %q: %w", title, err)
	}
	if err := s.sheet.Clear(ctx, title); err != nil {
		return fmt.Errorf("failed to clear worksheet %q: %w", title, err)
	}
	for _, row := range rows {
		if err := s.sheet.AppendRow(ctx, title, row); err != nil {
			return fmt.Errorf("failed to write worksheet %q: %w", title, err)
		}
	}
	return nil
}
