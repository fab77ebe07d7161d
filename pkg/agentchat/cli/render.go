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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/display"
)

// Renderer paints display blocks for a terminal. It only decides styling;
// segmentation into paragraphs and lists belongs to the display package.
type Renderer struct {
	styled      bool
	bulletStyle lipgloss.Style
	subStyle    lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewRenderer builds a Renderer. With styled false the output is plain text,
// for pipes and tests.
func NewRenderer(styled bool) Renderer {
	return Renderer{
		styled:      styled,
		bulletStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		subStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Render formats answer into blocks and lays them out line by line.
// The returned string always ends with a single trailing newline.
func (r Renderer) Render(answer string) string {
	if r.styled && strings.HasPrefix(answer, "Error:") {
		return r.errorStyle.Render(answer) + "\n"
	}

	var b strings.Builder
	for _, block := range display.Format(answer) {
		switch block.Kind {
		case display.Paragraph:
			b.WriteString(block.Text)
			b.WriteString("\n")
		case display.BulletList:
			for _, item := range block.Items {
				b.WriteString(r.paint(r.bulletStyle, "• "))
				b.WriteString(item.Text)
				b.WriteString("\n")
				for _, sub := range item.SubItems {
					b.WriteString("  ")
					b.WriteString(r.paint(r.subStyle, "- "))
					b.WriteString(sub)
					b.WriteString("\n")
				}
			}
		}
	}
	return b.String()
}

func (r Renderer) paint(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}
