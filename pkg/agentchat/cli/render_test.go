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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPlainParagraphs(t *testing.T) {
	r := NewRenderer(false)
	out := r.Render("first line\nsecond line")
	require.Equal(t, "first line\nsecond line\n", out)
}

func TestRenderPlainBullets(t *testing.T) {
	r := NewRenderer(false)
	out := r.Render("Options:\n* alpha\n+ detail\n* beta")
	require.Equal(t, "Options:\n• alpha\n  - detail\n• beta\n", out)
}

func TestRenderPlainErrorAnswer(t *testing.T) {
	// Without styling an error answer renders as an ordinary paragraph.
	r := NewRenderer(false)
	out := r.Render("Error: failed to connect to agent.")
	require.Equal(t, "Error: failed to connect to agent.\n", out)
}

func TestRenderEmptyAnswer(t *testing.T) {
	r := NewRenderer(false)
	require.Equal(t, "\n", r.Render(""))
}
