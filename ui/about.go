package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderAbout converts the embedded methodology text to HTML once at startup
func renderAbout() (template.HTML, error) {
	src, err := embeddedFiles.ReadFile("content/about.md")
	if err != nil {
		return "", fmt.Errorf("failed to read methodology page: %w", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(src)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})

	// The source is embedded at build time, never user supplied
	return template.HTML(markdown.Render(doc, renderer)), nil
}
