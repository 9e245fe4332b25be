// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/danielhkuo/classpoll/models"
)

// Response worksheet columns, 0-based
const (
	colTimestamp = iota
	colStudentID
	colName
	colResponseQuestionID
	colAnswer
	colSessionID

	responseColumns = colSessionID + 1
)

// ResponseHeader is the expected first row of the response worksheet
var ResponseHeader = []string{"시간", "학번", "이름", "질문ID", "응답", "세션ID"}

// AllResponses returns every response row in append order
func (s *Store) AllResponses(ctx context.Context) ([]models.Response, error) {
	rows, err := s.load(ctx, ResponseSheet, ResponseHeader)
	if err != nil {
		return nil, err
	}

	responses := []models.Response{}
	for _, raw := range rows {
		row := pad(raw, responseColumns)
		qid := strings.TrimSpace(row[colResponseQuestionID])
		if qid == "" {
			continue
		}
		responses = append(responses, models.Response{
			Timestamp:  row[colTimestamp],
			StudentID:  row[colStudentID],
			Name:       row[colName],
			QuestionID: qid,
			Answer:     row[colAnswer],
			SessionID:  row[colSessionID],
		})
	}
	return responses, nil
}

// Responses returns the responses to one question. The whole worksheet is
// read and filtered in memory.
func (s *Store) Responses(ctx context.Context, questionID string) ([]models.Response, error) {
	all, err := s.AllResponses(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Response{}
	for _, r := range all {
		if r.QuestionID == questionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// AppendResponse writes one response row. An empty Timestamp is filled with
// the current time.
func (s *Store) AppendResponse(ctx context.Context, r models.Response) error {
	if r.Timestamp == "" {
		r.Timestamp = FormatTimestamp(s.now())
	}
	row := make([]string, responseColumns)
	row[colTimestamp] = r.Timestamp
	row[colStudentID] = r.StudentID
	row[colName] = r.Name
	row[colResponseQuestionID] = r.QuestionID
	row[colAnswer] = r.Answer
	row[colSessionID] = r.SessionID

	if err := s.sheet.AppendRow(ctx, ResponseSheet, row); err != nil {
		return fmt.Errorf("failed to append response: %w", err)
	}
	return nil
}

func FormatTimestamp(t time.Time) string {
	return strftime.Format(TimestampFormat, t)
}

// ParseTimestamp reads a time column value in the local time zone
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(time.DateTime, strings.TrimSpace(value), time.Local)
}
