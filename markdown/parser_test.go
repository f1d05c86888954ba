package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeadingAndParagraph(t *testing.T) {
	blocks := Parse("# Title\n\nSome text.\nMore text.\n")

	assert.Equal(t, []Block{
		{Kind: Heading, Level: 1, Text: "Title"},
		{Kind: Paragraph, Text: "Some text. More text."},
	}, blocks)
}

func TestParse_ListItems(t *testing.T) {
	blocks := Parse("- a\n- b\n")

	assert.Equal(t, []Block{
		{Kind: ListItem, Text: "a"},
		{Kind: ListItem, Text: "b"},
	}, blocks)
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.NotNil(t, Parse(""))
	assert.Empty(t, Parse("\n\n   \n\t\n"))
}

func TestParse_HeadingLevels(t *testing.T) {
	blocks := Parse("# One\n## Two\n### Three\n#### Four")

	require.Len(t, blocks, 4)
	assert.Equal(t, Block{Kind: Heading, Level: 1, Text: "One"}, blocks[0])
	assert.Equal(t, Block{Kind: Heading, Level: 2, Text: "Two"}, blocks[1])
	assert.Equal(t, Block{Kind: Heading, Level: 3, Text: "Three"}, blocks[2])
	// Deeper headings are not recognized and fall through to paragraphs
	assert.Equal(t, Block{Kind: Paragraph, Text: "#### Four"}, blocks[3])
}

func TestParse_HeadingRequiresSpace(t *testing.T) {
	blocks := Parse("#NoSpace\n##Nope")

	assert.Equal(t, []Block{{Kind: Paragraph, Text: "#NoSpace ##Nope"}}, blocks)
}

func TestParse_CodeFenceHasNoState(t *testing.T) {
	input := "Intro\n```js\nconst x = 1;\n- not code\n```\nAfter"

	blocks := Parse(input)

	assert.Equal(t, []Block{
		{Kind: Paragraph, Text: "Intro"},
		{Kind: CodeLine, Text: "```js"},
		{Kind: Paragraph, Text: "const x = 1;"},
		{Kind: ListItem, Text: "not code"},
		{Kind: CodeLine, Text: "```"},
		{Kind: Paragraph, Text: "After"},
	}, blocks)
}

func TestParse_StarListItemAndFlush(t *testing.T) {
	blocks := Parse("first line\nsecond line\n* item\nthird")

	assert.Equal(t, []Block{
		{Kind: Paragraph, Text: "first line second line"},
		{Kind: ListItem, Text: "item"},
		{Kind: Paragraph, Text: "third"},
	}, blocks)
}

func TestParse_TextIsVerbatim(t *testing.T) {
	blocks := Parse("  **bold** and [link](x)  \n-not a list\n*also not*")

	require.Len(t, blocks, 1)
	assert.Equal(t, "  **bold** and [link](x)   -not a list *also not*", blocks[0].Text)
}

func TestParse_CaseAndPrefixSensitivity(t *testing.T) {
	blocks := Parse("  # indented heading\n-  two spaces")

	assert.Equal(t, []Block{
		{Kind: Paragraph, Text: "  # indented heading"},
		{Kind: ListItem, Text: " two spaces"},
	}, blocks)
}

func TestParse_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"# a\n",
		"```\n```",
		"x\n\n\ny\n- z\n### w",
		"\r\n# crlf\r\n",
	}

	for _, input := range inputs {
		first := Parse(input)
		second := Parse(input)
		assert.Equal(t, first, second, "input %q", input)
	}
}

func TestParse_FreshSlicePerCall(t *testing.T) {
	first := Parse("# a")
	first[0].Text = "mutated"

	second := Parse("# a")
	assert.Equal(t, "a", second[0].Text)
}

func TestParse_PreservesNonBlankContent(t *testing.T) {
	input := "# Title\nline one\nline two\n\n- item\n```go\ncode\n```\n### End"

	var expected []string
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			expected = append(expected, line)
		}
	}

	var rendered []string
	for _, block := range Parse(input) {
		switch block.Kind {
		case Heading:
			rendered = append(rendered, strings.Repeat("#", block.Level)+" "+block.Text)
		case ListItem:
			rendered = append(rendered, "- "+block.Text)
		default:
			rendered = append(rendered, block.Text)
		}
	}

	assert.Equal(t, strings.Join(expected, " "), strings.Join(rendered, " "))
}

func TestPlainText(t *testing.T) {
	lines := PlainText(Parse("# T\nbody\n- li"))

	assert.Equal(t, []string{"T", "body", "li"}, lines)
}

func TestBlockKind_String(t *testing.T) {
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "paragraph", Paragraph.String())
	assert.Equal(t, "list_item", ListItem.String())
	assert.Equal(t, "code_line", CodeLine.String())
	assert.Equal(t, "unknown", BlockKind(0).String())
}

func TestRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	renderer := &Renderer{Out: &buf, Plain: true}

	err := renderer.Render(context.Background(), "# Title\ntext\n- item\n```")
	require.NoError(t, err)

	assert.Equal(t, "\nTitle\n\ntext\n\n  • item\n```\n", buf.String())
}

func TestRenderer_Highlighted(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(&buf, "dracula")

	err := renderer.Render(context.Background(), "```go\nbody")
	require.NoError(t, err)

	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "body")
}

func TestRenderer_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	renderer := &Renderer{Out: &buf, Plain: true}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := renderer.Render(ctx, "# Title")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "Output interrupted")
}
