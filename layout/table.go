package layout

const (
	cellPadding = 4
	headingGap  = 6
)

type Cell struct {
	Text  string
	Style Style
}

type Row struct {
	Cells []Cell
}

// Span marks an inclusive body-row range tied to one merged cell (a
// slab label or subtotal rendered once for several rows). Splits snap
// to span boundaries so a merged cell is never divided.
type Span struct {
	Start, End int
}

// Table is a titled table: heading, one repeated header row, body rows
// and optional footer rows appended to the body. When Contd is set the
// heading renders with a "(Contd.)" suffix; continuations produced by
// Split set it on the trailing part and leave the leading part's flag
// untouched, so a second split of an already-continued table keeps its
// continued heading.
type Table struct {
	Heading      string
	HeadingStyle Style
	Contd        bool
	Columns      []float64
	Header       Row
	Rows         []Row
	Spans        []Span
	SpaceAfter   float64
}

func (t *Table) HeadingText() string {
	if t.Contd {
		return t.Heading + " (Contd.)"
	}
	return t.Heading
}

func (t *Table) headingHeight(m Metrics, width float64) float64 {
	if t.Heading == "" {
		return 0
	}
	return m.TextHeight(t.HeadingText(), t.HeadingStyle, width) + headingGap
}

func (t *Table) rowHeight(m Metrics, row Row) float64 {
	h := 0.0
	for i, c := range row.Cells {
		w := 0.0
		if i < len(t.Columns) {
			w = t.Columns[i]
		}
		if ch := m.TextHeight(c.Text, c.Style, w-2*cellPadding); ch > h {
			h = ch
		}
	}
	return h + 2*cellPadding
}

func (t *Table) headerHeight(m Metrics) float64 {
	if len(t.Header.Cells) == 0 {
		return 0
	}
	return t.rowHeight(m, t.Header)
}

// FixedHeight is the part repeated on every page the table touches:
// heading plus header row.
func (t *Table) FixedHeight(m Metrics, width float64) float64 {
	return t.headingHeight(m, width) + t.headerHeight(m)
}

// BodyRowHeight reports row i's height; exposed for the driver's page
// accounting and for tests.
func (t *Table) BodyRowHeight(m Metrics, i int) float64 {
	return t.rowHeight(m, t.Rows[i])
}

func (t *Table) Height(m Metrics, width float64) float64 {
	h := t.FixedHeight(m, width)
	for _, r := range t.Rows {
		h += t.rowHeight(m, r)
	}
	return h + t.SpaceAfter
}

// Split takes as many whole body rows as fit in avail, snapped down to
// a merged-cell boundary. The trailing part is marked as a
// continuation. ok is false when not even the heading plus one row
// fits, or when taking fewer rows would strand a zero-row first part.
func (t *Table) Split(m Metrics, width, avail float64) (Block, Block, bool) {
	fixed := t.FixedHeight(m, width)
	if avail < fixed {
		return nil, nil, false
	}

	budget := avail - fixed
	k := 0
	for k < len(t.Rows) {
		rh := t.rowHeight(m, t.Rows[k])
		if budget < rh {
			break
		}
		budget -= rh
		k++
	}
	k = t.snapToSpan(k)
	if k <= 0 {
		return nil, nil, false
	}
	if k >= len(t.Rows) {
		return t, nil, true
	}

	first := *t
	first.Rows = t.Rows[:k]
	first.SpaceAfter = 0
	first.Spans = nil
	for _, s := range t.Spans {
		if s.End < k {
			first.Spans = append(first.Spans, s)
		}
	}

	rest := *t
	rest.Contd = true
	rest.Rows = t.Rows[k:]
	rest.Spans = nil
	for _, s := range t.Spans {
		if s.Start >= k {
			rest.Spans = append(rest.Spans, Span{Start: s.Start - k, End: s.End - k})
		}
	}

	return &first, &rest, true
}

// snapToSpan lowers the split point out of any merged-cell range it
// falls inside.
func (t *Table) snapToSpan(k int) int {
	for changed := true; changed; {
		changed = false
		for _, s := range t.Spans {
			if k > s.Start && k <= s.End {
				k = s.Start
				changed = true
			}
		}
	}
	return k
}
