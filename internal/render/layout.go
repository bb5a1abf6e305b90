package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"resume-studio/internal/model"
)

// BlockKind classifies a laid-out block.
type BlockKind string

const (
	BlockName        BlockKind = "name"
	BlockTitle       BlockKind = "title"
	BlockContacts    BlockKind = "contacts"
	BlockHeading     BlockKind = "heading"
	BlockEntry       BlockKind = "entry"
	BlockSub         BlockKind = "sub"
	BlockText        BlockKind = "text"
	BlockBullet      BlockKind = "bullet"
	BlockSkill       BlockKind = "skill"
	BlockItem        BlockKind = "item"
	BlockPlaceholder BlockKind = "placeholder"
)

// Block is one unit of content placed on the line grid of a page.
type Block struct {
	Kind BlockKind
	// Text is the full, unwrapped content of the block.
	Text string
	// Right is right-aligned text on the first line, such as dates.
	Right string
	// Link is the target of a block that is itself a link.
	Link string
	// Lines are the wrapped lines of Text placed on this page.
	Lines []string
	// Line is the grid row of the first line on the page.
	Line int
	// Continued marks the tail of a block split across pages.
	Continued bool

	gap          int
	keepWithNext bool
}

// Page is one fixed-size page of the layout.
type Page struct {
	Number int
	Blocks []Block
}

// Layout is the paginated rendering of a document.
type Layout struct {
	Page         PageSize
	MarginMM     float64
	Columns      int
	LinesPerPage int
	Pages        []Page
}

// Paginate lays doc out on fixed-size pages. Section headings stay with the
// block that follows them, and a block is only split across pages when it
// is taller than a whole page.
func Paginate(doc model.Document, opts Options) Layout {
	opts = opts.withDefaults()
	l := Layout{
		Page:         opts.Page,
		MarginMM:     opts.MarginMM,
		Columns:      opts.Columns,
		LinesPerPage: opts.LinesPerPage,
	}
	l.Pages = place(flow(buildView(doc, opts.Labels), opts.Columns), opts.LinesPerPage)
	return l
}

// Bullets returns the text of every bullet in layout order.
func (l Layout) Bullets() []string {
	var out []string
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.Kind == BlockBullet && !b.Continued {
				out = append(out, b.Text)
			}
		}
	}
	return out
}

// flow turns the view into an unplaced sequence of wrapped blocks.
func flow(v view, columns int) []Block {
	if v.Empty {
		return []Block{{Kind: BlockPlaceholder, Text: v.Placeholder, Lines: wrap(v.Placeholder, columns)}}
	}

	var blocks []Block
	add := func(b Block, width int) {
		b.Lines = wrap(b.Text, width)
		blocks = append(blocks, b)
	}

	if v.Header.Name != "" {
		add(Block{Kind: BlockName, Text: v.Header.Name}, columns)
	}
	if v.Header.Title != "" {
		add(Block{Kind: BlockTitle, Text: v.Header.Title}, columns)
	}
	if len(v.Header.Contacts) > 0 {
		parts := make([]string, 0, len(v.Header.Contacts))
		for _, c := range v.Header.Contacts {
			parts = append(parts, c.Text)
		}
		add(Block{Kind: BlockContacts, Text: strings.Join(parts, " | ")}, columns)
	}

	for _, s := range v.Sections {
		add(Block{Kind: BlockHeading, Text: s.Title, gap: 1, keepWithNext: true}, columns)
		switch s.Kind {
		case kindText:
			add(Block{Kind: BlockText, Text: s.Text}, columns)
		case kindSkills:
			for _, sk := range s.Skills {
				add(Block{Kind: BlockSkill, Text: sk.Label + ": " + sk.Values}, columns)
			}
		case kindItems:
			for _, it := range s.Items {
				add(Block{Kind: BlockItem, Text: it.Text, Link: it.URL}, columns)
			}
		case kindEntries:
			for i, e := range s.Entries {
				gap := 0
				if i > 0 {
					gap = 1
				}
				right := e.Dates
				width := columns - runewidth.StringWidth(right) - 1
				if width < columns/2 {
					width = columns / 2
				}
				add(Block{Kind: BlockEntry, Text: e.Heading, Right: right, gap: gap, keepWithNext: true}, width)
				if e.Sub != "" || e.Location != "" {
					add(Block{Kind: BlockSub, Text: joinNonEmpty(" · ", e.Sub, e.Location), keepWithNext: true}, columns)
				}
				if e.Link.URL != "" {
					add(Block{Kind: BlockItem, Text: e.Link.Text, Link: e.Link.URL, keepWithNext: len(e.Bullets) > 0}, columns)
				}
				if e.Note != "" {
					add(Block{Kind: BlockText, Text: e.Note}, columns)
				}
				for _, b := range e.Bullets {
					add(Block{Kind: BlockBullet, Text: b}, columns-2)
				}
				if e.Technologies != "" {
					add(Block{Kind: BlockText, Text: e.Technologies}, columns)
				}
				// The last keep-with-next block of an entry has nothing to
				// hold on to.
				if last := &blocks[len(blocks)-1]; last.keepWithNext {
					last.keepWithNext = false
				}
			}
		}
	}
	return blocks
}

// place assigns blocks to pages and grid rows.
func place(blocks []Block, linesPerPage int) []Page {
	pages := []Page{{Number: 1}}
	line := 0
	newPage := func() {
		pages = append(pages, Page{Number: len(pages) + 1})
		line = 0
	}

	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		gap := b.gap
		if line == 0 {
			gap = 0
		}
		if line > 0 && line+gap+keepHeight(blocks, i, linesPerPage) > linesPerPage {
			newPage()
			gap = 0
		}
		line += gap

		lines := b.Lines
		continued := false
		for {
			room := linesPerPage - line
			if len(lines) <= room {
				pb := b
				pb.Lines, pb.Line, pb.Continued = lines, line, continued
				pages[len(pages)-1].Blocks = append(pages[len(pages)-1].Blocks, pb)
				line += len(lines)
				break
			}
			pb := b
			pb.Lines, pb.Line, pb.Continued = lines[:room], line, continued
			pages[len(pages)-1].Blocks = append(pages[len(pages)-1].Blocks, pb)
			lines = lines[room:]
			continued = true
			newPage()
		}
	}
	return pages
}

// keepHeight is the number of rows needed to place block i together with
// the blocks it must stay with, capped at one page.
func keepHeight(blocks []Block, i, linesPerPage int) int {
	h := len(blocks[i].Lines)
	for j := i; blocks[j].keepWithNext && j+1 < len(blocks); j++ {
		h += blocks[j+1].gap + len(blocks[j+1].Lines)
	}
	if h > linesPerPage {
		h = linesPerPage
	}
	return h
}

// wrap breaks s into lines no wider than width display cells. Words wider
// than a line are broken at the cell boundary.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if curW > 0 && curW+1+w <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + w
			continue
		}
		if curW > 0 {
			flush()
		}
		for w > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the line.
				r := []rune(word)
				head = string(r[0])
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		cur.WriteString(word)
		curW = w
	}
	if curW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
