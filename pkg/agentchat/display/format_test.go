package display

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPlainParagraphs(t *testing.T) {
	blocks := Format("line1\nline2")
	require.Len(t, blocks, 2)
	require.Equal(t, Block{Kind: Paragraph, Text: "line1"}, blocks[0])
	require.Equal(t, Block{Kind: Paragraph, Text: "line2"}, blocks[1])
}

func TestFormatEmptyInput(t *testing.T) {
	blocks := Format("")
	require.Equal(t, []Block{{Kind: Paragraph, Text: ""}}, blocks)
}

func TestFormatBlankLinesBecomeEmptyParagraphs(t *testing.T) {
	blocks := Format("a\n\nb")
	require.Len(t, blocks, 3)
	require.Equal(t, "a", blocks[0].Text)
	require.Equal(t, "", blocks[1].Text)
	require.Equal(t, "b", blocks[2].Text)
}

func TestFormatBulletListWithSubItems(t *testing.T) {
	blocks := Format("* a\n+ b\n* c")
	require.Len(t, blocks, 1)
	require.Equal(t, BulletList, blocks[0].Kind)
	require.Equal(t, []Item{
		{Text: "a", SubItems: []string{"b"}},
		{Text: "c"},
	}, blocks[0].Items)
}

func TestFormatListBracketing(t *testing.T) {
	blocks := Format("intro\n* one\n* two\noutro\n* three")
	require.Len(t, blocks, 4)
	require.Equal(t, Block{Kind: Paragraph, Text: "intro"}, blocks[0])
	require.Equal(t, BulletList, blocks[1].Kind)
	require.Equal(t, []Item{{Text: "one"}, {Text: "two"}}, blocks[1].Items)
	require.Equal(t, Block{Kind: Paragraph, Text: "outro"}, blocks[2])
	require.Equal(t, BulletList, blocks[3].Kind)
	require.Equal(t, []Item{{Text: "three"}}, blocks[3].Items)
}

func TestFormatTrailingOpenListIsEmitted(t *testing.T) {
	blocks := Format("text\n* tail")
	require.Len(t, blocks, 2)
	require.Equal(t, BulletList, blocks[1].Kind)
}

func TestFormatSubBulletWithoutOpenListFallsBack(t *testing.T) {
	blocks := Format("+ orphan")
	require.Len(t, blocks, 1)
	require.Equal(t, Paragraph, blocks[0].Kind)
	require.Equal(t, "+ orphan", blocks[0].Text)
}

func TestFormatParagraphKeepsOriginalIndentation(t *testing.T) {
	blocks := Format("  indented")
	require.Equal(t, "  indented", blocks[0].Text)
}

func TestFormatIndentedBulletsAreStillBullets(t *testing.T) {
	blocks := Format("  * a\n   + b")
	require.Len(t, blocks, 1)
	require.Equal(t, []Item{{Text: "a", SubItems: []string{"b"}}}, blocks[0].Items)
}

func TestRepairNewlinesAndQuotes(t *testing.T) {
	require.Equal(t, "a\nb", Repair(`a\nb`))
	require.Equal(t, `say "hi"`, Repair(`say \"hi\"`))
	require.Equal(t, "it's", Repair(`it\'s`))
}

func TestRepairTabs(t *testing.T) {
	require.Equal(t, "a    b", Repair(`a\tb`))
}

func TestRepairContractions(t *testing.T) {
	cases := map[string]string{
		`I didn\ know`:    "I didn't know",
		`I don\ care`:     "I don't care",
		`it isn\ here`:    "it isn't here",
		`it wasn\ me`:     "it wasn't me",
		`we haven\ tried`: "we haven't tried",
		`I didn\`:         "I didn't", // end of string boundary
	}
	for in, want := range cases {
		require.Equal(t, want, Repair(in), "input %q", in)
	}
}

func TestRepairLeavesUnknownBackslashesAlone(t *testing.T) {
	// Not on the allow-list: stays as-is.
	require.Equal(t, `I couldn\ see`, Repair(`I couldn\ see`))
	require.Equal(t, `back\slash`, Repair(`back\slash`))
	// No preceding letter: the heuristic does not fire.
	require.Equal(t, `didn\ start`, Repair(`didn\ start`))
}

func TestRepairThenStructure(t *testing.T) {
	blocks := Format(`I didn\ know\n* a`)
	require.Len(t, blocks, 2)
	require.Equal(t, "I didn't know", blocks[0].Text)
	require.Equal(t, BulletList, blocks[1].Kind)
}
