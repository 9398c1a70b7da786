// Package markdown renders assistant answers for the terminal.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Renderer handles markdown rendering with syntax highlighting.
type Renderer struct {
	glamour *glamour.TermRenderer
	width   int
	cache   map[string]string
}

// NewRenderer creates a new markdown renderer.
func NewRenderer(width int) (*Renderer, error) {
	gr, err := glamour.NewTermRenderer(
		glamour.WithStyles(customStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		glamour: gr,
		width:   width,
		cache:   map[string]string{},
	}, nil
}

// ToMarkdown renders markdown content. The cache key is the message id; pass
// "" to render without caching. Answers arrive whole, so content under a key
// never changes.
func (r *Renderer) ToMarkdown(content, cacheKey string) string {
	if cacheKey != "" {
		if md, ok := r.cache[cacheKey]; ok {
			return md
		}
	}

	rendered, err := r.glamour.Render(content)
	if err != nil {
		// Fall back to the raw text rather than losing the message.
		rendered = content
	}
	rendered = strings.TrimRight(rendered, "\n")

	if cacheKey != "" {
		r.cache[cacheKey] = rendered
	}
	return rendered
}

// SetWidth updates the renderer width, recreating internals if needed.
func (r *Renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	newRenderer, err := NewRenderer(width)
	if err != nil {
		return err
	}
	*r = *newRenderer
	return nil
}

// customStyle returns a modified glamour style for cleaner output.
func customStyle() ansi.StyleConfig {
	style := styles.DraculaStyleConfig
	zero := uint(0)
	style.Document.Margin = &zero
	style.CodeBlock.Margin = &zero

	style.Paragraph.BlockPrefix = ""
	style.Paragraph.BlockSuffix = ""

	return style
}
