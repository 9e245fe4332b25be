// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/classpoll/models"
)

var (
	ErrNotIdentified   = errors.New("participant has not identified")
	ErrInvalidIdentity = errors.New("student id and name are required")
	ErrAlreadyAnswered = errors.New("question already answered in this session")
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrInvalidChoice   = errors.New("answer is not one of the options")
)

// Recorder persists a submitted answer
type Recorder interface {
	AppendResponse(ctx context.Context, r models.Response) error
}

// Session is the state of one participant: identity, which questions were
// already answered, and a context that ends when the session is reset or
// expires.
type Session struct {
	id string

	// mu serializes operations of one participant, including the store
	// write inside Submit
	mu         sync.Mutex
	identity   models.Identity
	identified bool
	suggested  string
	answered   map[string]bool

	lastSeen atomic.Int64 // unix nanoseconds
	ctx      context.Context
	cancel   context.CancelFunc
}

func newSession(id string, nicknameMode bool, previousNickname string, now time.Time) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        id,
		identity:  models.Identity{NicknameMode: nicknameMode},
		suggested: nicknameOtherThan(previousNickname),
		answered:  make(map[string]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.lastSeen.Store(now.UnixNano())
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Done is closed when the session is reset or swept
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) end() {
	s.cancel()
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Identify records who the participant is. In nickname mode an empty
// nickname takes the current suggestion; otherwise both student id and name
// are required.
func (s *Session) Identify(req models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.NicknameMode {
		nickname := strings.TrimSpace(req.Nickname)
		if nickname == "" {
			nickname = s.suggested
		}
		s.identity = models.Identity{Nickname: nickname, NicknameMode: true}
		s.identified = true
		return nil
	}

	studentID := strings.TrimSpace(req.StudentID)
	name := strings.TrimSpace(req.Name)
	if studentID == "" || name == "" {
		return ErrInvalidIdentity
	}
	s.identity = models.Identity{StudentID: studentID, Name: name}
	s.identified = true
	return nil
}

func (s *Session) Identity() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.identified
}

// RegenerateNickname draws a new nickname. It replaces the current one when
// the participant already identified in nickname mode.
func (s *Session) RegenerateNickname() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.suggested
	if s.identified && s.identity.NicknameMode {
		current = s.identity.Nickname
	}
	nickname := nicknameOtherThan(current)
	s.suggested = nickname
	if s.identified && s.identity.NicknameMode {
		s.identity.Nickname = nickname
	}
	return nickname
}

// SetNickname replaces the nickname (or the suggestion before identifying)
func (s *Session) SetNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrInvalidIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggested = nickname
	if s.identified && s.identity.NicknameMode {
		s.identity.Nickname = nickname
	}
	return nil
}

func (s *Session) Answered(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered[questionID]
}

// Submit validates raw against q, appends one response row and marks q as
// answered. Nothing is marked when the store write fails, so the participant
// can retry.
func (s *Session) Submit(ctx context.Context, rec Recorder, q models.Question, raw string) (models.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.identified {
		return models.Response{}, ErrNotIdentified
	}
	if s.answered[q.ID] {
		return models.Response{}, ErrAlreadyAnswered
	}
	answer, err := ValidateAnswer(q, raw)
	if err != nil {
		return models.Response{}, err
	}

	r := models.Response{
		StudentID:  s.identity.StudentID,
		Name:       s.identity.DisplayName(),
		QuestionID: q.ID,
		Answer:     answer,
		SessionID:  s.id,
	}
	if err := rec.AppendResponse(ctx, r); err != nil {
		return models.Response{}, err
	}
	s.answered[q.ID] = true
	return r, nil
}

// View derives the participant's state from its identity, the currently
// active question (nil when none) and the answered set.
func (s *Session) View(active *models.Question) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := models.SessionView{SessionID: s.id}
	if !s.identified {
		v.State = models.StateUnidentified
		v.SuggestedNickname = s.suggested
		return v
	}

	identity := s.identity
	v.Identity = &identity
	switch {
	case active == nil:
		v.State = models.StateWaiting
		v.Banner = models.Info("Waiting for the next question")
	case s.answered[active.ID]:
		v.State = models.StateAnswered
		v.Banner = models.Success("Answer recorded. Waiting for the next question")
	default:
		q := *active
		v.State = models.StateAnswering
		v.Question = &q
	}
	return v
}

// ActiveQuestion returns the first active question in table order. More
// than one active row can exist after racing admins or manual edits; the
// first one wins.
func ActiveQuestion(questions []models.Question) (models.Question, bool) {
	for _, q := range questions {
		if q.Active {
			return q, true
		}
	}
	return models.Question{}, false
}

// ValidateAnswer checks raw against the question type and returns the value
// to store: an exact option for multiple choice, trimmed text otherwise.
func ValidateAnswer(q models.Question, raw string) (string, error) {
	if q.IsMultipleChoice() {
		if !q.HasOption(raw) {
			return "", ErrInvalidChoice
		}
		return raw, nil
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
