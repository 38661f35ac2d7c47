// Package layout places titled tables and paragraphs onto fixed-size
// document pages, splitting table bodies at row boundaries when they
// run past the bottom of a page. Measurement, splitting and drawing are
// separate operations so the engine stays independent of the renderer
// that finally produces the PDF.
package layout

import "math"

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Style struct {
	FontSize float64
	Bold     bool
	Align    Align
}

// Metrics supplies rendered text dimensions. The engine never talks to
// the renderer directly; it only asks for heights.
type Metrics interface {
	// TextHeight is the height of text wrapped into the given width.
	TextHeight(text string, style Style, width float64) float64
	LineHeight(style Style) float64
}

// DefaultMetrics approximates the fixed-size sans face the PDF
// templates use. Average glyph width is taken as 0.55em, which is
// within a point or two of Arial at the sizes the bills print at.
type DefaultMetrics struct{}

func (DefaultMetrics) LineHeight(s Style) float64 {
	return s.FontSize*1.2 + 2
}

func (m DefaultMetrics) TextHeight(text string, s Style, width float64) float64 {
	if width <= 0 {
		return m.LineHeight(s)
	}
	charW := s.FontSize * 0.55
	perLine := math.Max(1, math.Floor(width/charW))
	lines := math.Max(1, math.Ceil(float64(len(text))/perLine))
	return lines * m.LineHeight(s)
}

// Block is a placeable unit of document content.
type Block interface {
	// Height is the block's full height at the given width.
	Height(m Metrics, width float64) float64
	// Split divides the block so that first fits within avail. ok is
	// false when the block cannot be divided meaningfully and must be
	// deferred whole to the next page.
	Split(m Metrics, width, avail float64) (first, rest Block, ok bool)
}

// Paragraph is a single run of styled text. Paragraphs never split;
// they are short on these documents.
type Paragraph struct {
	Text       string
	Style      Style
	SpaceAfter float64
}

func (p *Paragraph) Height(m Metrics, width float64) float64 {
	return m.TextHeight(p.Text, p.Style, width) + p.SpaceAfter
}

func (p *Paragraph) Split(Metrics, float64, float64) (Block, Block, bool) {
	return nil, nil, false
}

// Spacer is fixed vertical whitespace. It is dropped rather than split
// when it straddles a page boundary.
type Spacer struct {
	H float64
}

func (s *Spacer) Height(Metrics, float64) float64 { return s.H }

func (s *Spacer) Split(Metrics, float64, float64) (Block, Block, bool) {
	return nil, nil, false
}

// PageBreak forces the next block onto a fresh page.
type PageBreak struct{}

func (PageBreak) Height(Metrics, float64) float64 { return 0 }

func (PageBreak) Split(Metrics, float64, float64) (Block, Block, bool) {
	return nil, nil, false
}
