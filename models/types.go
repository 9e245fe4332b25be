package models

import "strings"

// Question type cells as written in the question worksheet
const (
	TypeMultipleChoice QuestionType = "객관식"
	TypeFreeText       QuestionType = "단답형"
)

// MaxOptions is the number of option columns in the question worksheet
const MaxOptions = 5

// Banner levels
const (
	BannerInfo    = "info"
	BannerSuccess = "success"
	BannerWarning = "warning"
)

// Participant session states
const (
	StateUnidentified = "unidentified"
	StateWaiting      = "waiting"
	StateAnswering    = "answering"
	StateAnswered     = "answered"
)

type QuestionType string

// ParseQuestionType accepts the worksheet values and their English aliases.
func ParseQuestionType(cell string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case string(TypeMultipleChoice), "multiple-choice", "mc":
		return TypeMultipleChoice, true
	case string(TypeFreeText), "free-text", "text":
		return TypeFreeText, true
	}
	return TypeFreeText, false
}

// Domain types

type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options"`
	Correct string       `json:"correct,omitempty"`
	Active  bool         `json:"active"`
	Row     int          `json:"-"` // 1-based worksheet row
}

func (q Question) IsMultipleChoice() bool {
	return q.Type == TypeMultipleChoice
}

// HasOption reports whether answer is exactly one of the configured options
func (q Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

type Response struct {
	Timestamp  string `json:"timestamp"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	SessionID  string `json:"session_id"`
}

type Identity struct {
	StudentID    string `json:"student_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	NicknameMode bool   `json:"nickname_mode"`
}

// DisplayName is the value written to the name column of a response row
func (i Identity) DisplayName() string {
	if i.NicknameMode {
		return i.Nickname
	}
	return i.Name
}

// Aggregates

type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Banner is an inline informational or warning message. Failures are reported
// through banners so the client stays interactive.
type Banner struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func Info(msg string) *Banner    { return &Banner{Level: BannerInfo, Message: msg} }
func Success(msg string) *Banner { return &Banner{Level: BannerSuccess, Message: msg} }
func Warning(msg string) *Banner { return &Banner{Level: BannerWarning, Message: msg} }

// Request types

type IdentifyRequest struct {
	StudentID    string `json:"student_id" validate:"omitempty,max=32"`
	Name         string `json:"name" validate:"omitempty,max=40"`
	NicknameMode bool   `json:"nickname_mode"`
	Nickname     string `json:"nickname" validate:"omitempty,max=40"`
}

type NicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,max=40"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,max=64"`
	Answer     string `json:"answer" validate:"required,max=1000"`
}

// Response types

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
	ActiveID  string     `json:"active_id,omitempty"`
	Banner    *Banner    `json:"banner,omitempty"`
}

type ActivateResponse struct {
	ActiveID    string `json:"active_id"`
	Deactivated int    `json:"deactivated"`
}

type DeactivateResponse struct {
	Deactivated int `json:"deactivated"`
}

type ResponseView struct {
	Response
	Age string `json:"age,omitempty"`
}

type ResponsesResponse struct {
	QuestionID string         `json:"question_id"`
	Total      int            `json:"total"`
	Responses  []ResponseView `json:"responses"`
	Banner     *Banner        `json:"banner,omitempty"`
}

type ResultsResponse struct {
	Question *Question     `json:"question,omitempty"`
	Total    int           `json:"total"`
	Choices  []OptionCount `json:"choices,omitempty"`
	Words    []WordCount   `json:"words,omitempty"`
	Banner   *Banner       `json:"banner,omitempty"`
}

type SeedResponse struct {
	Questions int     `json:"questions"`
	Banner    *Banner `json:"banner"`
}

type ConnectionResponse struct {
	Worksheets int     `json:"worksheets"`
	Banner     *Banner `json:"banner"`
}

type SessionView struct {
	SessionID         string    `json:"session_id"`
	State             string    `json:"state"`
	Identity          *Identity `json:"identity,omitempty"`
	SuggestedNickname string    `json:"suggested_nickname,omitempty"`
	Question          *Question `json:"question,omitempty"`
	Banner            *Banner   `json:"banner,omitempty"`
	Version           uint64    `json:"version"` // pass back to /session/wait
}

type ActiveQuestionResponse struct {
	Question *Question `json:"question,omitempty"`
	Banner   *Banner   `json:"banner,omitempty"`
}

type SubmitAnswerResponse struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
