// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/classpoll/models"
)

// Question worksheet columns, 0-based
const (
	colQuestionID = iota
	colPrompt
	colType
	colOption1
	colCorrect = colOption1 + models.MaxOptions
	colActive  = colCorrect + 1

	questionColumns = colActive + 1
)

// QuestionHeader is the expected first row of the question worksheet
var QuestionHeader = []string{
	"질문ID", "질문", "유형",
	"선택지1", "선택지2", "선택지3", "선택지4", "선택지5",
	"정답", "활성화",
}

const (
	activeYes = "Y"
	activeNo  = "N"
)

// Questions returns every question in table order. Rows without an id are
// skipped.
func (s *Store) Questions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.load(ctx, QuestionSheet, QuestionHeader)
	if err != nil {
		return nil, err
	}

	questions := []models.Question{}
	for i, raw := range rows {
		row := pad(raw, questionColumns)
		id := strings.TrimSpace(row[colQuestionID])
		if id == "" {
			continue
		}

		qtype, ok := models.ParseQuestionType(row[colType])
		if !ok {
			slog.Warn("unknown question type, treating as free text",
				"question_id", id, "type", row[colType])
		}

		q := models.Question{
			ID:      id,
			Prompt:  strings.TrimSpace(row[colPrompt]),
			Type:    qtype,
			Options: []string{},
			Correct: strings.TrimSpace(row[colCorrect]),
			Active:  strings.EqualFold(strings.TrimSpace(row[colActive]), activeYes),
			Row:     i + 2, // header is row 1
		}
		for _, cell := range row[colOption1 : colOption1+models.MaxOptions] {
			if opt := strings.TrimSpace(cell); opt != "" {
				q.Options = append(q.Options, opt)
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *Store) setActive(ctx context.Context, q models.Question, active bool) error {
	value := activeNo
	if active {
		value = activeYes
	}
	if err := s.sheet.UpdateCell(ctx, QuestionSheet, q.Row, colActive+1, value); err != nil {
		return fmt.Errorf("failed to set active flag for %s: %w", q.ID, err)
	}
	return nil
}

// Activate clears every active flag and then sets the flag of questionID.
//
// The two phases are separate writes. Two admins activating at the same time
// can interleave and leave zero or two questions active; participants resolve
// the latter by taking the first active row.
func (s *Store) Activate(ctx context.Context, questionID string) (int, error) {
	questions, err := s.Questions(ctx)
	if err != nil {
		return 0, err
	}

	deactivated, err := s.deactivate(ctx, questions)
	if err != nil {
		return deactivated, err
	}

	for _, q := range questions {
		if q.ID == questionID {
			if err := s.setActive(ctx, q, true); err != nil {
				return deactivated, err
			}
			return deactivated, nil
		}
	}
	return deactivated, fmt.Errorf("%q: %w", questionID, ErrQuestionNotFound)
}

// DeactivateAll clears every active flag and returns how many were set
func (s *Store) DeactivateAll(ctx context.Context) (int, error) {
	questions, err := s.Questions(ctx)
	if err != nil {
		return 0, err
	}
	return s.deactivate(ctx, questions)
}

func (s *Store) deactivate(ctx context.Context, questions []models.Question) (int, error) {
	n := 0
	for _, q := range questions {
		if !q.Active {
			continue
		}
		if err := s.setActive(ctx, q, false); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Question finds a question by id
func (s *Store) Question(ctx context.Context, questionID string) (models.Question, error) {
	questions, err := s.Questions(ctx)
	if err != nil {
		return models.Question{}, err
	}
	for _, q := range questions {
		if q.ID == questionID {
			return q, nil
		}
	}
	return models.Question{}, fmt.Errorf("%q: %w", questionID, ErrQuestionNotFound)
}

func questionRow(q models.Question) []string {
	row := make([]string, questionColumns)
	row[colQuestionID] = q.ID
	row[colPrompt] = q.Prompt
	row[colType] = string(q.Type)
	for i := 0; i < len(q.Options) && i < models.MaxOptions; i++ {
		row[colOption1+i] = q.Options[i]
	}
	row[colCorrect] = q.Correct
	row[colActive] = activeNo
	if q.Active {
		row[colActive] = activeYes
	}
	return row
}
