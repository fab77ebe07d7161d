// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package session holds the conversation-scoped state shared by successive
// exchanges against the same agent.
//
// A Session carries exactly two things:
//
//   - the activity id, committed at most once for the whole conversation and
//     read-only thereafter, and
//   - a single-flight guard, so that two exchanges can never interleave their
//     stream reads on the same conversation.
//
// The Session is owned by the conversation's top-level controller (CLI loop,
// TUI model, test) and passed by reference into the assist client, which is
// the only component that mutates it.
package session

import "sync"

// Session is the state spanning multiple exchanges of one conversation.
// Safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	activityID string
	inFlight   bool
}

// New returns an empty Session. The activity id is assigned lazily by the
// first successful exchange.
func New() *Session {
	return &Session{}
}

// ActivityID returns the committed activity id, or "" when no exchange has
// committed one yet.
func (s *Session) ActivityID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activityID
}

// CommitActivityID stores id if no activity id has been committed yet.
// Later calls are no-ops: the activity id is never regenerated while non-empty.
// It reports whether the commit took effect.
func (s *Session) CommitActivityID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activityID != "" || id == "" {
		return false
	}
	s.activityID = id
	return true
}

// TryAcquire claims the Session for one exchange. It returns false when
// another exchange is still in flight; the caller must then reject the new
// exchange rather than interleave two stream reads.
func (s *Session) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// Release ends the current exchange. It must be called exactly once per
// successful TryAcquire.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}
