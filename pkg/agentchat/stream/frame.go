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

package stream

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// Two frame dialects have been observed from different agent builds:
//
//   - typed-event: two lines, "event: <TYPE>" then "data: <payload>"
//   - JSON-envelope: a single JSON object with a "type" field, optionally
//     behind a "data: " prefix
//
// The dialect is detected per frame from the presence of an "event:" first
// line, so both can appear in the same stream without configuration.

const (
	eventFinalResponse = "FINAL_RESPONSE"
	eventDone          = "done"
	eventError         = "error"

	envelopeMessage = "message"
	envelopeError   = "error"
	envelopeDone    = "done"
)

// frameOp is the effect a decoded frame has on the exchange.
type frameOp int

const (
	opSkip frameOp = iota
	opAppend
	opDone
	opError
)

type frameResult struct {
	op      frameOp
	content string
}

// Legacy payloads stringify the response object instead of emitting JSON;
// the content is then recovered from a quoted content=... substring.
var (
	singleQuotedContent = regexp.MustCompile(`content='([^']*)'`)
	doubleQuotedContent = regexp.MustCompile(`content="([^"]*)"`)
)

// decodeFrame classifies one complete, non-blank frame. Malformed frames in
// either dialect decode to opSkip: frame errors are recovered locally and
// never terminate the exchange.
func decodeFrame(frame string, logger *slog.Logger) frameResult {
	if strings.HasPrefix(strings.TrimSpace(frame), "event:") {
		return decodeTypedEvent(frame, logger)
	}
	return decodeJSONEnvelope(frame, logger)
}

func decodeTypedEvent(frame string, logger *slog.Logger) frameResult {
	lines := strings.Split(frame, "\n")
	if len(lines) < 2 {
		logger.Debug("skipping typed-event frame with fewer than two lines", "frame", frame)
		return frameResult{op: opSkip}
	}
	eventLine, dataLine := lines[0], lines[1]
	if !strings.HasPrefix(eventLine, "event: ") || !strings.HasPrefix(dataLine, "data: ") {
		logger.Debug("skipping typed-event frame with malformed lines", "event", eventLine, "data", dataLine)
		return frameResult{op: opSkip}
	}

	eventType := strings.TrimPrefix(eventLine, "event: ")
	data := strings.TrimPrefix(dataLine, "data: ")

	switch eventType {
	case eventFinalResponse:
		content, ok := extractContent(data)
		if !ok {
			logger.Debug("no content in FINAL_RESPONSE payload", "data", data)
			return frameResult{op: opSkip}
		}
		return frameResult{op: opAppend, content: content}
	case eventDone:
		return frameResult{op: opDone}
	case eventError:
		content, ok := extractContent(data)
		if !ok {
			content = strings.TrimSpace(data)
		}
		return frameResult{op: opError, content: content}
	default:
		logger.Debug("ignoring typed-event frame", "event", eventType)
		return frameResult{op: opSkip}
	}
}

func decodeJSONEnvelope(frame string, logger *slog.Logger) frameResult {
	payload := strings.TrimPrefix(strings.TrimSpace(frame), "data: ")

	var envelope struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		logger.Debug("skipping unparseable frame", "frame", frame, "err", err)
		return frameResult{op: opSkip}
	}

	switch envelope.Type {
	case envelopeMessage:
		return frameResult{op: opAppend, content: envelope.Content}
	case envelopeError:
		return frameResult{op: opError, content: envelope.Content}
	case envelopeDone:
		return frameResult{op: opDone}
	default:
		logger.Debug("ignoring envelope frame", "type", envelope.Type)
		return frameResult{op: opSkip}
	}
}

// extractContent pulls the content string out of a typed-event payload.
// JSON payloads win; on a JSON parse failure it falls back to the quoted
// content=... substring emitted by older server builds. A payload that parses
// as JSON but carries no string content yields nothing (no fallback).
func extractContent(data string) (string, bool) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err == nil {
		obj, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		content, ok := obj["content"].(string)
		return content, ok
	}

	if m := singleQuotedContent.FindStringSubmatch(data); m != nil && m[1] != "" {
		return m[1], true
	}
	if m := doubleQuotedContent.FindStringSubmatch(data); m != nil && m[1] != "" {
		return m[1], true
	}
	return "", false
}
