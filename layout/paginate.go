package layout

import "errors"

// ErrCannotFit means a block fits neither whole nor split on an empty
// page. That is a layout configuration error (for these documents it
// would take a heading taller than A4); pagination aborts instead of
// looping.
var ErrCannotFit = errors.New("block cannot fit on an empty page")

type Placed struct {
	Block Block
	Y     float64
}

type Page struct {
	Blocks []Placed
}

// Paginate lays blocks out top to bottom across pages of the given
// content size. A table that overruns the page is split at a row
// boundary and its continuation re-queued, so a long table flows over
// as many pages as it needs.
func Paginate(blocks []Block, width, height float64, m Metrics) ([]Page, error) {
	var pages []Page
	cur := Page{}
	y := 0.0

	flush := func() {
		pages = append(pages, cur)
		cur = Page{}
		y = 0
	}

	queue := make([]Block, len(blocks))
	copy(queue, blocks)

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if _, isBreak := b.(PageBreak); isBreak {
			flush()
			continue
		}

		avail := height - y
		h := b.Height(m, width)
		if h <= avail {
			cur.Blocks = append(cur.Blocks, Placed{Block: b, Y: y})
			y += h
			continue
		}

		// Spacers at a page boundary are dropped, not carried over.
		if _, isSpacer := b.(*Spacer); isSpacer {
			flush()
			continue
		}

		if first, rest, ok := b.Split(m, width, avail); ok {
			cur.Blocks = append(cur.Blocks, Placed{Block: first, Y: y})
			flush()
			if rest != nil {
				queue = append([]Block{rest}, queue...)
			}
			continue
		}

		// No fit and no split in the remaining space: defer onto a
		// fresh page, where it must fit or split or the layout is broken.
		if y == 0 {
			first, rest, splitOK := b.Split(m, width, height)
			if !splitOK {
				return nil, ErrCannotFit
			}
			cur.Blocks = append(cur.Blocks, Placed{Block: first, Y: 0})
			flush()
			if rest != nil {
				queue = append([]Block{rest}, queue...)
			}
			continue
		}
		flush()
		queue = append([]Block{b}, queue...)
	}

	if len(cur.Blocks) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	return pages, nil
}
