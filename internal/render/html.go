package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
)

var (
	//go:embed templates/layout.html.tmpl
	layoutTemplateSource string
	//go:embed templates/style.css
	layoutStyle string
)

var layoutTemplate = template.Must(template.New("layout.html").Parse(layoutTemplateSource))

type htmlBlock struct {
	Class string
	Style template.CSS
	Right string
	Link  string
	Lines []string
}

type htmlPage struct {
	Number int
	Blocks []htmlBlock
}

type htmlDoc struct {
	Title string
	Style template.CSS
	Pages []htmlPage
}

// HTML projects the layout onto absolutely positioned, millimetre-sized
// pages suitable for printing to PDF.
func (l Layout) HTML() (string, error) {
	lineMM := l.lineHeightMM()
	doc := htmlDoc{
		Title: l.title(),
		Style: template.CSS(layoutStyle + l.gridCSS(lineMM)),
	}
	for _, p := range l.Pages {
		hp := htmlPage{Number: p.Number}
		for _, b := range p.Blocks {
			class := "block " + string(b.Kind)
			if b.Continued {
				class += " continued"
			}
			hb := htmlBlock{
				Class: class,
				Style: template.CSS(fmt.Sprintf("top:%.2fmm;", l.MarginMM+float64(b.Line)*lineMM)),
				Link:  b.Link,
				Lines: b.Lines,
			}
			if !b.Continued {
				hb.Right = b.Right
			}
			hp.Blocks = append(hp.Blocks, hb)
		}
		doc.Pages = append(doc.Pages, hp)
	}

	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render layout html: %w", err)
	}
	return buf.String(), nil
}

func (l Layout) lineHeightMM() float64 {
	if l.LinesPerPage <= 0 {
		return 0
	}
	return (l.Page.HeightMM - 2*l.MarginMM) / float64(l.LinesPerPage)
}

// gridCSS sizes pages and text so that Columns monospace cells fill the
// printable width and LinesPerPage rows fill the printable height.
func (l Layout) gridCSS(lineMM float64) string {
	width := l.Page.WidthMM - 2*l.MarginMM
	cellMM := width / float64(max(l.Columns, 1))
	// Monospace glyphs are roughly 0.6em wide.
	fontMM := min(cellMM/0.6, lineMM*0.85)
	var b strings.Builder
	fmt.Fprintf(&b, "\n@page { size: %.0fmm %.0fmm; margin: 0; }\n", l.Page.WidthMM, l.Page.HeightMM)
	fmt.Fprintf(&b, ".page { width: %.2fmm; height: %.2fmm; }\n", l.Page.WidthMM, l.Page.HeightMM)
	fmt.Fprintf(&b, ".block { left: %.2fmm; width: %.2fmm; font-size: %.2fmm; line-height: %.2fmm; }\n",
		l.MarginMM, width, fontMM, lineMM)
	return b.String()
}

func (l Layout) title() string {
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.Kind == BlockName {
				return b.Text
			}
		}
	}
	return "Resume"
}
