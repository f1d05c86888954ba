package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/meysamhadeli/zendocs/constants/lipgloss"
)

// Renderer prints parsed blocks to a terminal writer.
type Renderer struct {
	Out   io.Writer
	Theme string
	// Plain disables ANSI styling, used when output is not a terminal.
	Plain bool
}

// NewRenderer creates a renderer writing to out with the given chroma theme.
func NewRenderer(out io.Writer, theme string) *Renderer {
	return &Renderer{Out: out, Theme: theme}
}

// Render parses the markdown text and prints it.
func (r *Renderer) Render(ctx context.Context, text string) error {
	return r.RenderBlocks(ctx, Parse(text))
}

// RenderBlocks prints already parsed blocks with cancellation support.
func (r *Renderer) RenderBlocks(ctx context.Context, blocks []Block) error {
	for i, block := range blocks {
		// Check for cancellation every few blocks to keep large documents interruptible
		if i%5 == 0 {
			select {
			case <-ctx.Done():
				fmt.Fprint(r.Out, "\n\n🔄 Output interrupted...\n")
				return ctx.Err()
			default:
			}
		}

		line, err := r.format(block)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(r.Out, line); err != nil {
			return fmt.Errorf("write block: %w", err)
		}
	}

	return nil
}

func (r *Renderer) format(block Block) (string, error) {
	switch block.Kind {
	case Heading:
		text := block.Text
		if !r.Plain {
			text = lipgloss.Heading(block.Level).Render(text)
		}
		return "\n" + text + "\n\n", nil
	case ListItem:
		return "  • " + block.Text + "\n", nil
	case CodeLine:
		if r.Plain {
			return block.Text + "\n", nil
		}
		var buf bytes.Buffer
		if err := quick.Highlight(&buf, block.Text+"\n", "markdown", "terminal256", r.Theme); err != nil {
			return "", fmt.Errorf("highlight code line: %w", err)
		}
		return buf.String(), nil
	default:
		return block.Text + "\n\n", nil
	}
}
