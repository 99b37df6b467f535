// Package report renders analysis warnings and tag concordances in
// text, markdown, HTML, JSON, and JUnit XML. Every renderer is
// deterministic: identical input produces identical bytes.
package report

import (
	"fmt"
	"io"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

// Version identifies the report payload layout, not the binary.
const Version = "0.1.0"

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatJUnit    Format = "junit"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatJUnit:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown, html, json, or junit)", s)
}

// Renderer writes one output format. Implementations hold no state
// between calls.
type Renderer interface {
	RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error
	RenderConcordance(w io.Writer, conc *concordance.Concordance) error
}

// New returns the renderer for a format.
func New(format Format) (Renderer, error) {
	switch format {
	case FormatText:
		return textRenderer{styles: DefaultStyles()}, nil
	case FormatMarkdown:
		return markdownRenderer{}, nil
	case FormatHTML:
		return htmlRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatJUnit:
		return junitRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
