// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/classpoll/models"
	"github.com/danielhkuo/classpoll/session"
)

// Source reads the question table
type Source interface {
	Questions(ctx context.Context) ([]models.Question, error)
}

// Snapshot is the result of the latest question read. Err is set when that
// read failed; Questions then still holds the last successful read.
type Snapshot struct {
	Questions []models.Question
	Err       error
	FetchedAt time.Time
	Version   uint64
}

// Active returns the first active question of the snapshot
func (s Snapshot) Active() (models.Question, bool) {
	return session.ActiveQuestion(s.Questions)
}

// Feed caches the question table for the vote app and wakes waiters when the
// active question changes.
type Feed struct {
	source Source
	now    func() time.Time

	mu      sync.RWMutex
	snap    Snapshot
	changed chan struct{}
}

func NewFeed(source Source) *Feed {
	return &Feed{
		source:  source,
		now:     time.Now,
		changed: make(chan struct{}),
	}
}

// Refresh reads the question table once. Waiters on Changed are released
// when the active question id differs from the previous read or the read
// starts or stops failing.
func (f *Feed) Refresh(ctx context.Context) error {
	questions, err := f.source.Questions(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.snap
	next := Snapshot{
		Questions: prev.Questions,
		Err:       err,
		FetchedAt: f.now(),
		Version:   prev.Version,
	}
	if err == nil {
		next.Questions = questions
	}

	if activeID(prev) != activeID(next) || (prev.Err == nil) != (next.Err == nil) || prev.FetchedAt.IsZero() {
		next.Version++
		close(f.changed)
		f.changed = make(chan struct{})
		if err == nil {
			slog.Info("active question changed", "active_id", activeID(next), "version", next.Version)
		}
	}
	f.snap = next

	if err != nil {
		slog.Error("failed to refresh questions", "error", err)
	}
	return err
}

func activeID(s Snapshot) string {
	if s.Err != nil {
		return ""
	}
	q, _ := s.Active()
	return q.ID
}

// Snapshot returns the latest read
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	snap := f.snap
	snap.Questions = append([]models.Question(nil), f.snap.Questions...)
	return snap
}

// Current returns the latest read, reading synchronously if nothing has been
// read yet.
func (f *Feed) Current(ctx context.Context) Snapshot {
	snap := f.Snapshot()
	if snap.FetchedAt.IsZero() {
		// Refresh logs a failed read; callers get it back in snap.Err
		_ = f.Refresh(ctx)
		snap = f.Snapshot()
	}
	return snap
}

// Changed returns a channel closed at the next change of the active question
func (f *Feed) Changed() <-chan struct{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.changed
}

// Wait blocks until the snapshot version differs from version, ctx is done
// or done is closed, and returns the latest snapshot.
func (f *Feed) Wait(ctx context.Context, version uint64, done <-chan struct{}) Snapshot {
	for {
		changed := f.Changed()
		snap := f.Snapshot()
		if snap.Version != version {
			return snap
		}
		select {
		case <-changed:
		case <-done:
			return snap
		case <-ctx.Done():
			return snap
		}
	}
}
