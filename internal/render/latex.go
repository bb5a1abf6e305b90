package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"resume-studio/internal/model"
)

//go:embed templates/resume.tex.tmpl
var texTemplateSource string

var texTemplate = template.Must(template.New("resume.tex").
	Delims("<<", ">>").
	Funcs(template.FuncMap{
		"tex":      EscapeTeX,
		"link":     texLink,
		"contacts": texContacts,
	}).
	Parse(texTemplateSource))

// LaTeX renders doc as a complete, ready-to-compile LaTeX source. A
// document with nothing to show renders the no-content placeholder.
func LaTeX(doc model.Document, opts Options) (string, error) {
	opts = opts.withDefaults()
	var buf bytes.Buffer
	if err := texTemplate.Execute(&buf, buildView(doc, opts.Labels)); err != nil {
		return "", fmt.Errorf("render latex: %w", err)
	}
	return buf.String(), nil
}

func texLink(c contact) string {
	if c.URL == "" {
		return EscapeTeX(c.Text)
	}
	return `\href{` + texURL(c.URL) + `}{` + EscapeTeX(c.Text) + `}`
}

func texContacts(cs []contact) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, texLink(c))
	}
	return strings.Join(parts, ` \enspace$\cdot$\enspace `)
}
