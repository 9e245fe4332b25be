// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/classpoll/models"
)

type fakeSource struct {
	mu        sync.Mutex
	questions []models.Question
	err       error
	calls     int
}

func (f *fakeSource) Questions(context.Context) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Question(nil), f.questions...), nil
}

func (f *fakeSource) set(active string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	f.questions = []models.Question{
		{ID: "Q1", Active: active == "Q1"},
		{ID: "Q2", Active: active == "Q2"},
	}
}

func TestFeed_Refresh(t *testing.T) {
	src := &fakeSource{}
	src.set("", nil)
	feed := NewFeed(src)
	ctx := context.Background()

	if err := feed.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	first := feed.Snapshot()
	if _, ok := first.Active(); ok {
		t.Error("Expected no active question")
	}

	changed := feed.Changed()
	feed.Refresh(ctx)
	select {
	case <-changed:
		t.Fatal("Unchanged table should not signal")
	default:
	}
	if feed.Snapshot().Version != first.Version {
		t.Error("Version should not move without a change")
	}

	src.set("Q2", nil)
	feed.Refresh(ctx)
	select {
	case <-changed:
	default:
		t.Fatal("Activation should signal")
	}
	snap := feed.Snapshot()
	if q, ok := snap.Active(); !ok || q.ID != "Q2" {
		t.Errorf("Expected Q2 active, got %+v", q)
	}
	if snap.Version != first.Version+1 {
		t.Errorf("Expected version %d, got %d", first.Version+1, snap.Version)
	}
}

func TestFeed_ErrorKeepsLastQuestions(t *testing.T) {
	src := &fakeSource{}
	src.set("Q1", nil)
	feed := NewFeed(src)
	ctx := context.Background()
	feed.Refresh(ctx)

	boom := errors.New("quota exceeded")
	src.set("Q1", boom)
	if err := feed.Refresh(ctx); !errors.Is(err, boom) {
		t.Fatalf("Expected refresh error, got %v", err)
	}
	snap := feed.Snapshot()
	if !errors.Is(snap.Err, boom) {
		t.Errorf("Expected snapshot error, got %v", snap.Err)
	}
	if len(snap.Questions) != 2 {
		t.Errorf("Expected last good questions to be kept, got %d", len(snap.Questions))
	}

	version := snap.Version
	src.set("Q1", nil)
	feed.Refresh(ctx)
	if feed.Snapshot().Err != nil || feed.Snapshot().Version == version {
		t.Error("Recovery should clear the error and bump the version")
	}
}

func TestFeed_Current(t *testing.T) {
	src := &fakeSource{}
	src.set("Q1", nil)
	feed := NewFeed(src)

	snap := feed.Current(context.Background())
	if q, ok := snap.Active(); !ok || q.ID != "Q1" {
		t.Errorf("Expected Q1 from first read, got %+v", q)
	}
	feed.Current(context.Background())
	if src.calls != 1 {
		t.Errorf("Expected one read, got %d", src.calls)
	}
}

func TestFeed_Current_FirstReadFails(t *testing.T) {
	errDown := errors.New("sheet down")
	src := &fakeSource{}
	src.set("Q1", errDown)
	feed := NewFeed(src)

	snap := feed.Current(context.Background())
	if !errors.Is(snap.Err, errDown) {
		t.Fatalf("Expected the read error in the snapshot, got %v", snap.Err)
	}
	if snap.FetchedAt.IsZero() || snap.Version == 0 {
		t.Errorf("Expected the failed read to be recorded, got %+v", snap)
	}
	if _, ok := snap.Active(); ok {
		t.Error("Expected no active question without a successful read")
	}

	// the failure counts as a read, so the next call does not hit the sheet
	feed.Current(context.Background())
	if src.calls != 1 {
		t.Errorf("Expected one read, got %d", src.calls)
	}
}

func TestFeed_Wait(t *testing.T) {
	src := &fakeSource{}
	src.set("", nil)
	feed := NewFeed(src)
	feed.Refresh(context.Background())
	version := feed.Snapshot().Version

	got := make(chan Snapshot, 1)
	go func() {
		got <- feed.Wait(context.Background(), version, nil)
	}()

	src.set("Q1", nil)
	feed.Refresh(context.Background())

	select {
	case snap := <-got:
		if q, ok := snap.Active(); !ok || q.ID != "Q1" {
			t.Errorf("Expected Q1 after wait, got %+v", q)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after activation")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap := feed.Wait(ctx, feed.Snapshot().Version, nil)
	if snap.Version != feed.Snapshot().Version {
		t.Error("Timed out wait should return the current snapshot")
	}

	done := make(chan struct{})
	close(done)
	feed.Wait(context.Background(), feed.Snapshot().Version, done)
}

func TestScheduler_Wrap(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScheduler(logger, 50*time.Millisecond)

	var sawDeadline atomic.Bool
	run := s.wrap("test", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		return errors.New("ignored")
	})
	run()
	if !sawDeadline.Load() {
		t.Error("Expected job context to carry a timeout")
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop failed: %v", err)
	}

	var cancelled atomic.Bool
	s.wrap("after-stop", func(ctx context.Context) error {
		cancelled.Store(ctx.Err() != nil)
		return nil
	})()
	if !cancelled.Load() {
		t.Error("Jobs started after Stop should see a cancelled context")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScheduler(logger, time.Second)

	var runs atomic.Int32
	s.Every("count", time.Second, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start()
	time.Sleep(1500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if runs.Load() < 1 {
		t.Error("Expected at least one scheduled run")
	}
}
