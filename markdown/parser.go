package markdown

import (
	"strings"
)

// BlockKind identifies the type of a rendered markdown block.
type BlockKind int

const (
	Heading BlockKind = iota + 1
	Paragraph
	ListItem
	CodeLine
)

const codeFence = "```"

func (k BlockKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	case ListItem:
		return "list_item"
	case CodeLine:
		return "code_line"
	default:
		return "unknown"
	}
}

// Block is one classified unit of markdown. Level is only set for headings (1-3).
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
}

// Parse classifies markdown text line by line into an ordered list of blocks.
//
// The classifier is deliberately shallow: fence delimiters are emitted as
// individual CodeLine blocks without tracking open/close state, and nested
// lists, emphasis and links are passed through verbatim. Parse never fails and
// returns a fresh slice on every call.
func Parse(text string) []Block {
	blocks := make([]Block, 0)
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		blocks = append(blocks, Block{Kind: Paragraph, Text: strings.Join(pending, " ")})
		pending = pending[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			flush()
			blocks = append(blocks, Block{Kind: Heading, Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, Block{Kind: Heading, Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			flush()
			blocks = append(blocks, Block{Kind: Heading, Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, codeFence):
			flush()
			blocks = append(blocks, Block{Kind: CodeLine, Text: line})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			flush()
			blocks = append(blocks, Block{Kind: ListItem, Text: line[2:]})
		case strings.TrimSpace(line) == "":
			flush()
		default:
			pending = append(pending, line)
		}
	}
	flush()

	return blocks
}

// PlainText returns the text carried by each block, in order.
func PlainText(blocks []Block) []string {
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lines = append(lines, block.Text)
	}
	return lines
}
