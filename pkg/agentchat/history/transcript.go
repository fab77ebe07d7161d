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

// Package history keeps the in-memory transcript of one chat run.
//
// There is deliberately no persistence: the transcript lives exactly as long
// as the process, mirroring a single page load of the original client.
package history

import (
	"sync"
	"time"
)

// Role labels who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance of the conversation, stamped at insertion time.
type Turn struct {
	Role Role
	Text string
	At   time.Time
}

// Transcript is an ordered, bounded record of turns.
//
// When the limit is exceeded the oldest turns are evicted first; an optional
// timeout additionally expires turns by age on access. Safe for concurrent
// use.
type Transcript struct {
	mu      sync.RWMutex
	limit   int           // <= 0 means unbounded
	timeout time.Duration // <= 0 disables age expiry
	turns   []Turn
}

// NewTranscript creates a Transcript keeping at most limit turns
// (limit <= 0 means unlimited) and expiring turns older than timeout
// (timeout <= 0 disables expiry).
func NewTranscript(limit int, timeout time.Duration) *Transcript {
	return &Transcript{limit: limit, timeout: timeout}
}

// Add appends a turn, then enforces limit and timeout.
func (t *Transcript) Add(role Role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{Role: role, Text: text, At: time.Now()})
	t.purge()
}

// Turns returns a copy of the live turns, oldest first.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.purge()
	return append([]Turn(nil), t.turns...)
}

// Size returns the number of live turns.
func (t *Transcript) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.purge()
	return len(t.turns)
}

// Clear drops every turn.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = nil
}

// purge enforces the timeout then the limit, oldest first.
// Callers must hold the write lock.
func (t *Transcript) purge() {
	if t.timeout > 0 {
		cutoff := time.Now().Add(-t.timeout)
		first := 0
		for first < len(t.turns) && t.turns[first].At.Before(cutoff) {
			first++
		}
		t.turns = t.turns[first:]
	}
	if t.limit > 0 && len(t.turns) > t.limit {
		t.turns = t.turns[len(t.turns)-t.limit:]
	}
}
