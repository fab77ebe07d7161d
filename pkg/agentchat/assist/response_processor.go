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

package assist

import (
	"context"

	"github.com/benoit-pereira-da-silva/textual/pkg/textual"

	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/session"
)

// ResponseProcessor adapts a Client to the textual pipeline: it is a
// textual.Processor that consumes prompt carrier values and emits one answer
// carrier value per prompt.
//
// All prompts flowing through one processor share one Session, so they form
// one conversation: the first exchange pins the activity id, and because the
// Apply loop is sequential the Session's single-flight guard is never hit
// from inside the pipeline.
//
// Exchange failures surface as answer text (the Client's string contract),
// not as carrier errors; the carrier error channel is reserved for pipeline
// cancellation.
type ResponseProcessor[S textual.Carrier[S]] struct {
	Client  *Client
	Session *session.Session
}

// NewResponseProcessor builds a processor around client with a fresh
// conversation Session.
func NewResponseProcessor[S textual.Carrier[S]](client *Client) *ResponseProcessor[S] {
	return &ResponseProcessor[S]{
		Client:  client,
		Session: session.New(),
	}
}

// Apply implements textual.Processor.
//
// Semantics follow the shared processor loop used across this project's
// provider processors: a nil ctx falls back to context.Background(), and on
// cancellation the upstream channel is drained so senders never block.
func (p *ResponseProcessor[S]) Apply(ctx context.Context, in <-chan S) <-chan S {
	if ctx == nil {
		ctx = context.Background()
	}

	out := make(chan S)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				for range in {
				}
				return

			case input, ok := <-in:
				if !ok {
					return
				}

				answer := p.Client.Assist(ctx, p.Session, input.UTF8String())
				res := input.FromUTF8String(answer)

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()

	return out
}
