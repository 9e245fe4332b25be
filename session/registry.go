// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	"github.com/danielhkuo/classpoll/auth"
)

// Registry holds the live participant sessions of one vote process
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new unidentified session
func (r *Registry) Create() *Session {
	return r.add(false, "")
}

func (r *Registry) add(nicknameMode bool, previousNickname string) *Session {
	s := newSession(auth.GenerateSessionID(), nicknameMode, previousNickname, r.now())
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns a live session and marks it as seen
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Reset ends the session id (if it exists) and starts a fresh unidentified
// one with a new id and no answered questions. A participant who used a
// nickname gets a different nickname suggestion.
func (r *Registry) Reset(id string) *Session {
	r.mu.Lock()
	old, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return r.Create()
	}
	old.end()

	identity, _ := old.Identity()
	previous := identity.Nickname
	if previous == "" {
		old.mu.Lock()
		previous = old.suggested
		old.mu.Unlock()
	}
	return r.add(identity.NicknameMode, previous)
}

// End removes a session and cancels anything waiting on it
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.end()
	}
	return ok
}

// Sweep ends sessions not seen for maxIdle and returns how many were removed
func (r *Registry) Sweep(maxIdle time.Duration) int {
	now := r.now()

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.idleSince(now) > maxIdle {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.end()
	}
	return len(expired)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
