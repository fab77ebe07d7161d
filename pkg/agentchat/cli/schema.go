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

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// loadOutputSchema reads and resolves the JSON Schema used to validate final
// answers. An empty path yields a nil schema (validation disabled).
func loadOutputSchema(path string) (*jsonschema.Resolved, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}

	var s jsonschema.Schema
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}

	resolved, err := s.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", path, err)
	}
	return resolved, nil
}

// validateAnswer parses answer as JSON and validates it against res.
// A nil res validates everything.
func validateAnswer(res *jsonschema.Resolved, answer string) error {
	if res == nil {
		return nil
	}

	var v any
	dec := json.NewDecoder(strings.NewReader(answer))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("answer is not valid JSON: %w", err)
	}
	return res.Validate(v)
}
