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

// Package assist implements the client side of the /assist streaming agent
// protocol: one POST per prompt, an event-stream response reassembled by the
// stream package, and a result that is always a displayable string.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/ids"
	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/session"
	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/stream"
)

// Terminal strings surfaced instead of errors. Every failure path of an
// exchange converges on one of these (or on the stream package's own
// terminal strings), so callers can render the result as an assistant
// message without special-casing.
const (
	// ConnectFailedMessage covers transport faults during connect or read,
	// including timeout expiry and caller cancellation.
	ConnectFailedMessage = "Error: Could not connect to the agent. Make sure it's running and reachable."

	// RequestFailedMessage covers non-success HTTP statuses. The response
	// body is not read in that case.
	RequestFailedMessage = "Error: Failed to get response from agent."

	// BusyMessage is resolved immediately when an exchange is started while
	// another one is still in flight on the same Session.
	BusyMessage = "Error: A previous request is still in progress."
)

// DefaultTimeout bounds one whole exchange. An agent that never sends a done
// frame and never closes its connection would otherwise hang the exchange
// forever; the source protocol had no such bound.
const DefaultTimeout = 2 * time.Minute

// Config holds the client options.
type Config struct {
	// BaseURL is the agent's base URL, e.g. "http://localhost:8000".
	// The /assist path is appended.
	BaseURL string

	// ProcessorID identifies the server-side processor.
	// Defaults to "test-processor".
	ProcessorID string

	// Timeout bounds one whole exchange (connect plus stream read).
	// Zero means DefaultTimeout; negative disables the bound.
	Timeout time.Duration

	// Logger receives diagnostics for recovered protocol conditions.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Client performs exchanges against one agent. Safe for concurrent use
// across distinct Sessions; within a Session, exchanges are single-flight.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient builds a Client.
//
// The http.Client timeout is left at zero on purpose: it would cover the
// whole body read, which for a streaming response is open-ended. The
// per-exchange bound is applied through the request context instead.
func NewClient(config Config) *Client {
	if strings.TrimSpace(config.ProcessorID) == "" {
		config.ProcessorID = defaultProcessorID
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 0},
	}
}

// Assist runs one exchange: it sends prompt, consumes the streamed response,
// and returns the reconstructed answer. It never returns an error; every
// failure resolves to a human-readable string with an "Error:" prefix, and
// an empty stream resolves to the fixed no-response fallback.
//
// Assist does not validate prompt; callers should reject empty input before
// invoking (the protocol itself accepts any string).
//
// The first successful exchange commits the Session's activity id, before
// the first byte of the stream is processed; later exchanges reuse it even
// if an earlier one ended in a mid-stream error.
func (c *Client) Assist(ctx context.Context, sess *session.Session, prompt string) string {
	if sess == nil {
		sess = session.New()
	}
	if !sess.TryAcquire() {
		return BusyMessage
	}
	defer sess.Release()

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	activityID := sess.ActivityID()
	if activityID == "" {
		activityID = ids.New()
	}

	body, err := json.Marshal(newRequest(prompt, activityID, c.config.ProcessorID))
	if err != nil {
		// Marshalling plain strings cannot fail; treated as a transport fault.
		c.config.Logger.Error("marshal assist request", "err", err)
		return ConnectFailedMessage
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + assistPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		c.config.Logger.Error("create assist request", "url", endpoint, "err", err)
		return ConnectFailedMessage
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.config.Logger.Debug("assist connect failed", "url", endpoint, "err", err)
		return ConnectFailedMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.config.Logger.Debug("assist request rejected", "status", resp.StatusCode)
		return RequestFailedMessage
	}

	// The request started; the activity id is now final for this Session.
	sess.CommitActivityID(activityID)

	return c.readStream(resp.Body)
}

// readStream drives the aggregator until a terminal frame, end of stream, or
// a read fault. Data after a terminal frame is ignored without being read.
func (c *Client) readStream(body io.Reader) string {
	agg := stream.NewAggregator(c.config.Logger)
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if agg.Feed(buf[:n]) {
				return agg.Result()
			}
		}
		if err == io.EOF {
			return agg.Finish()
		}
		if err != nil {
			c.config.Logger.Debug("assist stream read failed", "err", err)
			return ConnectFailedMessage
		}
	}
}
