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

// Package ids generates the identifiers used by the assist protocol.
//
// Every identifier (query id, request id, activity id) is a ULID: a
// 26-character Crockford base32 token that sorts lexicographically by
// creation time and stays monotonic within a single timestamp. Servers may
// rely on this ordering, so a plain random token is not a valid substitute.
package ids

import (
	crand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu sync.Mutex

	// Monotonic entropy keeps ids strictly increasing when several are
	// generated within the same millisecond. The reader is not safe for
	// concurrent use, hence the mutex.
	entropy = ulid.Monotonic(crand.Reader, 0)
)

// New returns a fresh ULID string. Safe for concurrent use.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
