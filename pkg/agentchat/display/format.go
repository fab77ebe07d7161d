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

// Package display turns a recovered answer string into renderable blocks.
//
// Format is pure and total: no I/O, never fails, and the block sequence
// brackets bullet and non-bullet line runs exactly, in input order. Renderers
// (CLI, TUI, anything else) only decide how to paint the blocks, never how to
// segment them.
package display

import "strings"

// BlockKind discriminates the two display block shapes.
type BlockKind int

const (
	// Paragraph is a single line of text, possibly empty. Empty lines are
	// kept as empty paragraphs so vertical spacing survives rendering.
	Paragraph BlockKind = iota
	// BulletList is a run of consecutive bullet lines.
	BulletList
)

// Block is one renderable unit. Text is set for Paragraph, Items for
// BulletList. Blocks are immutable once produced.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []Item
}

// Item is a top-level bullet with optional sub-items.
type Item struct {
	Text     string
	SubItems []string
}

// Format repairs raw and structures it into an ordered sequence of blocks.
//
// Lines whose trimmed form starts with "*" open or extend a bullet list;
// lines starting with "+" attach a sub-item to the most recent bullet while a
// list is open (with no open list they fall back to a paragraph, since there
// is nothing to attach to). Any other line closes an open list and becomes a
// paragraph with its original, untrimmed text. Empty input yields a single
// empty paragraph.
func Format(raw string) []Block {
	lines := strings.Split(Repair(raw), "\n")

	var blocks []Block
	var open []Item

	closeList := func() {
		if open != nil {
			blocks = append(blocks, Block{Kind: BulletList, Items: open})
			open = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "*"):
			open = append(open, Item{Text: strings.TrimSpace(trimmed[1:])})
		case strings.HasPrefix(trimmed, "+") && open != nil:
			last := &open[len(open)-1]
			last.SubItems = append(last.SubItems, strings.TrimSpace(trimmed[1:]))
		default:
			closeList()
			blocks = append(blocks, Block{Kind: Paragraph, Text: line})
		}
	}
	closeList()

	return blocks
}
