package render

// PageSize is a physical page in millimetres.
type PageSize struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// A4 is the only page size the print pipeline is tuned for.
var A4 = PageSize{Name: "A4", WidthMM: 210, HeightMM: 297}

const (
	defaultColumns      = 90
	defaultLinesPerPage = 64
	defaultMarginMM     = 15
)

// Options control both renderers. The zero value renders English headings
// on A4.
type Options struct {
	Labels Labels
	Page   PageSize
	// MarginMM is applied on all four sides of a page.
	MarginMM float64
	// Columns is the width of the line grid in monospace cells.
	Columns int
	// LinesPerPage is the height of the line grid.
	LinesPerPage int
}

func (o Options) withDefaults() Options {
	if o.Labels == nil {
		o.Labels = DefaultLabels()
	}
	if o.Page.WidthMM <= 0 || o.Page.HeightMM <= 0 {
		o.Page = A4
	}
	if o.MarginMM <= 0 {
		o.MarginMM = defaultMarginMM
	}
	if o.Columns <= 0 {
		o.Columns = defaultColumns
	}
	if o.LinesPerPage <= 0 {
		o.LinesPerPage = defaultLinesPerPage
	}
	return o
}
