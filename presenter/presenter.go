package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/zendocs/constants/lipgloss"
	"github.com/meysamhadeli/zendocs/markdown"
	"github.com/meysamhadeli/zendocs/report"
	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/meysamhadeli/zendocs/transport"
)

// Presenter renders session state and reports to a terminal.
type Presenter struct {
	out          io.Writer
	renderer     *markdown.Renderer
	previewLimit int
	plain        bool
}

// Options configures a Presenter.
type Options struct {
	Theme        string
	PreviewLimit int
	// Plain disables ANSI styling.
	Plain bool
}

// New creates a presenter writing to out.
func New(out io.Writer, opts Options) *Presenter {
	renderer := markdown.NewRenderer(out, opts.Theme)
	renderer.Plain = opts.Plain

	return &Presenter{
		out:          out,
		renderer:     renderer,
		previewLimit: opts.PreviewLimit,
		plain:        opts.Plain,
	}
}

func (p *Presenter) style(style interface{ Render(...string) string }, text string) string {
	if p.plain {
		return text
	}
	return style.Render(text)
}

// RenderSelection prints the archive accepted for submission.
func (p *Presenter) RenderSelection(archive models.Archive) {
	fmt.Fprintln(p.out, p.style(lipgloss.Green, fmt.Sprintf("✔ ZIP file selected: %s (%s)", archive.Name, archive.SizeMB())))
}

// RenderSnapshot prints whatever the session currently holds.
func (p *Presenter) RenderSnapshot(ctx context.Context, snapshot session.Snapshot) error {
	switch snapshot.Phase {
	case session.Succeeded:
		return p.RenderReport(ctx, snapshot.Report)
	case session.Failed:
		p.RenderError(snapshot.LastError)
		return nil
	case session.Submitting:
		fmt.Fprintln(p.out, p.style(lipgloss.BlueSky, "Processing..."))
		return nil
	case session.FileSelected:
		if snapshot.Selected != nil {
			p.RenderSelection(*snapshot.Selected)
		}
		return nil
	default:
		p.renderEmpty()
		return nil
	}
}

func (p *Presenter) renderEmpty() {
	fmt.Fprintln(p.out, p.box("No Documentation Yet\nUpload a ZIP file to generate documentation"))
}

func (p *Presenter) box(text string) string {
	if p.plain {
		return text
	}
	return lipgloss.BoxStyle.Render(text)
}

// RenderReport prints the summary, per-file outcomes and a documentation preview.
func (p *Presenter) RenderReport(ctx context.Context, rep *reportmodels.DocumentationReport) error {
	if rep == nil {
		p.renderEmpty()
		return nil
	}

	header := fmt.Sprintf("📚 Generated Documentation: %s\n%d files processed • %d successful",
		rep.ProjectName, rep.ProcessedFiles, rep.SuccessfulFiles)
	fmt.Fprintln(p.out, p.box(header))

	for _, entry := range rep.EntryList() {
		fmt.Fprintf(p.out, "%s %s  %s\n", p.statusBadge(entry), entry.File, p.languageBadge(entry.File))
	}

	footer := fmt.Sprintf("✔ %d of %d files documented", rep.SuccessfulFiles, rep.ProcessedFiles)
	if rep.Message != "" {
		footer += "  " + p.style(lipgloss.Gray, "["+rep.Message+"]")
	}
	fmt.Fprintln(p.out, footer)

	if rep.Documentation == "" {
		return nil
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.style(lipgloss.Info, "📄 Documentation Preview"))
	return p.renderer.Render(ctx, report.Preview(rep.Documentation, p.previewLimit))
}

// RenderEntry expands the summary of a single file.
func (p *Presenter) RenderEntry(ctx context.Context, rep *reportmodels.DocumentationReport, file string) error {
	for _, entry := range rep.EntryList() {
		if entry.File != file {
			continue
		}
		fmt.Fprintf(p.out, "%s %s\n", p.statusBadge(entry), entry.File)
		if strings.TrimSpace(entry.Summary) == "" {
			fmt.Fprintln(p.out, p.style(lipgloss.Gray, "No summary available."))
			return nil
		}
		return p.renderer.Render(ctx, entry.Summary)
	}
	return fmt.Errorf("file %q is not part of the report", file)
}

func (p *Presenter) statusBadge(entry reportmodels.FileDocEntry) string {
	if entry.HasDocumentation {
		return p.style(lipgloss.SuccessBadge, "✔ Success")
	}
	return p.style(lipgloss.FailedBadge, "✘ Failed")
}

func (p *Presenter) languageBadge(file string) string {
	language := report.LanguageOf(file)
	switch language {
	case "JavaScript":
		return p.style(lipgloss.JavaScriptBadge, language)
	case "TypeScript":
		return p.style(lipgloss.TypeScriptBadge, language)
	default:
		return p.style(lipgloss.UnknownBadge, language)
	}
}

// RenderError prints an error according to its kind so users can tell local
// validation, unreachable service and bad service payloads apart.
func (p *Presenter) RenderError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.out, p.style(errorStyle(err), Describe(err)))
}

func errorStyle(err error) interface{ Render(...string) string } {
	var validationErr *session.ValidationError
	if errors.As(err, &validationErr) {
		return lipgloss.Yellow
	}
	return lipgloss.Red
}

// Describe returns a user-facing message for an error.
func Describe(err error) string {
	var (
		validationErr *session.ValidationError
		transportErr  *transport.TransportError
		ingestErr     *report.IngestError
	)

	switch {
	case errors.As(err, &validationErr):
		return "⚠ " + validationErr.Error()
	case errors.As(err, &transportErr):
		return "🚫 Upload failed: " + transportErr.Error()
	case errors.As(err, &ingestErr):
		return "🚫 The service responded, but " + ingestErr.Error()
	default:
		return "🚫 " + err.Error()
	}
}
