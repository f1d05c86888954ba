package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/zendocs/report"
	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"

	HTMLMIMEType = "text/html"
)

// Artifact is a downloadable rendition of the combined documentation.
type Artifact struct {
	Name     string
	MIMEType string
	Content  []byte
}

// ParseFormat normalizes a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use 'md' or 'html')", name)
	}
}

// Build renders the report documentation as an artifact.
func Build(rep *reportmodels.DocumentationReport, format Format) (*Artifact, error) {
	if rep == nil {
		return nil, fmt.Errorf("no report to export")
	}

	switch format {
	case FormatMarkdown, "":
		return &Artifact{
			Name:     report.ArtifactName(rep.ProjectName),
			MIMEType: report.ArtifactMIMEType,
			Content:  []byte(rep.Documentation),
		}, nil
	case FormatHTML:
		content, err := renderHTML(rep)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Name:     strings.TrimSuffix(report.ArtifactName(rep.ProjectName), ".md") + ".html",
			MIMEType: HTMLMIMEType,
			Content:  content,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Write stores the artifact in dir and returns its path.
func Write(dir string, artifact *Artifact) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", artifact.Name, err)
	}
	return path, nil
}

func renderHTML(rep *reportmodels.DocumentationReport) ([]byte, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)

	var body bytes.Buffer
	if err := engine.Convert([]byte(rep.Documentation), &body); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s documentation</title>\n</head>\n<body>\n",
		htmlEscaper.Replace(rep.ProjectName))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")
