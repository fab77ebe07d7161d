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

import "github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/ids"

const (
	assistPath         = "/assist"
	defaultProcessorID = "test-processor"
)

// request is the /assist request body. All three identifiers are ULIDs;
// query id and request id are fresh per exchange, the activity id spans the
// conversation.
type request struct {
	Query   query       `json:"query"`
	Session sessionInfo `json:"session"`
}

type query struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

type sessionInfo struct {
	ProcessorID  string        `json:"processor_id"`
	ActivityID   string        `json:"activity_id"`
	RequestID    string        `json:"request_id"`
	Interactions []interaction `json:"interactions"`
}

// interaction is the (currently always empty) history placeholder the
// protocol requires. The slice must marshal as [], never null.
type interaction struct{}

func newRequest(prompt, activityID, processorID string) request {
	return request{
		Query: query{
			ID:     ids.New(),
			Prompt: prompt,
		},
		Session: sessionInfo{
			ProcessorID:  processorID,
			ActivityID:   activityID,
			RequestID:    ids.New(),
			Interactions: []interaction{},
		},
	}
}
