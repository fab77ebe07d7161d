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

// Package stream reassembles one streamed agent answer out of the raw
// response body of an /assist exchange.
//
// The wire format is a sequence of frames separated by a blank line. Chunks
// arrive with no alignment guarantee: a chunk may end in the middle of a
// frame, of the delimiter, or of a multi-byte UTF-8 code point. The
// Aggregator therefore buffers bytes, not text, and only converts complete
// frames to strings, so any chunking of the same byte stream produces the
// same answer.
package stream

import (
	"bytes"
	"log/slog"
	"strings"
)

// NoResponseMessage is the resolved answer when a stream terminates without
// having delivered any content.
const NoResponseMessage = "No response received from agent."

var frameDelimiter = []byte("\n\n")

// Aggregator is the state-carrying consumer for a single exchange: it holds
// the carry-over buffer, the answer accumulator, and the terminal flag.
// It is driven by whatever read loop the caller prefers: feed it chunks in
// arrival order and stop at the first terminal signal.
//
// An Aggregator must not be reused across exchanges.
type Aggregator struct {
	logger *slog.Logger

	buf      []byte
	answer   strings.Builder
	terminal bool
	result   string
}

// NewAggregator returns an Aggregator ready for one exchange.
// A nil logger falls back to slog.Default().
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Feed appends one chunk and processes every complete frame it uncovers.
// It reports whether a terminal frame (done or error) has been seen; once
// terminal, further chunks are ignored and the result is final.
func (a *Aggregator) Feed(chunk []byte) bool {
	if a.terminal {
		return true
	}
	a.buf = append(a.buf, chunk...)

	for {
		i := bytes.Index(a.buf, frameDelimiter)
		if i < 0 {
			// The tail is an incomplete frame; keep it for the next chunk.
			return false
		}
		frame := string(a.buf[:i])
		a.buf = a.buf[i+len(frameDelimiter):]

		if a.processFrame(frame) {
			a.terminal = true
			return true
		}
	}
}

// Finish resolves the exchange at end of stream. If no terminal frame was
// seen (truncated stream), it resolves with the trimmed accumulated answer,
// or NoResponseMessage when nothing was accumulated. An incomplete trailing
// frame left in the buffer is discarded, never partially decoded.
func (a *Aggregator) Finish() string {
	if !a.terminal {
		a.terminal = true
		a.result = a.finalAnswer()
	}
	return a.result
}

// Done reports whether a terminal frame has been processed.
func (a *Aggregator) Done() bool { return a.terminal }

// Result returns the resolved answer. Only meaningful once Done() is true or
// Finish() has been called.
func (a *Aggregator) Result() string { return a.result }

// processFrame applies one complete frame and reports whether it was terminal.
func (a *Aggregator) processFrame(frame string) bool {
	if strings.TrimSpace(frame) == "" {
		return false
	}

	switch res := decodeFrame(frame, a.logger); res.op {
	case opAppend:
		a.answer.WriteString(res.content)
	case opDone:
		a.result = a.finalAnswer()
		return true
	case opError:
		a.result = "Error: " + res.content
		return true
	}
	return false
}

func (a *Aggregator) finalAnswer() string {
	if trimmed := strings.TrimSpace(a.answer.String()); trimmed != "" {
		return trimmed
	}
	return NoResponseMessage
}
