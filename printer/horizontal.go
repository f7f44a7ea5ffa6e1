package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/npillmayer/arbor"
)

// box is the measured layout of a subtree.
type box struct {
	label    string
	cells    int  // display width of label
	blank    bool // label is empty and drawn as fill
	width    int  // width of the subtree without separator and padding
	children []*box
}

// Horizontal lays out the subtree at entrance top down, with every label
// centered over its children. Each level of depth takes four rows: labels,
// a vertical line up to the parent, the horizontal branch and vertical lines
// down to the children. The last level takes the label row only.
// Trailing fill is cut from every row, and an empty label is drawn as a
// single fill character. Nothing is written for an invalid entrance.
func Horizontal[T any](w io.Writer, entrance arbor.ConstTraverser[T], label func(T) string, b Branches) error {
	if err := b.validate(); err != nil {
		return err
	}
	if !entrance.Valid() {
		return nil
	}
	h := newHLayout(entrance, label, b)
	bw := bufio.NewWriter(w)
	for i := range h.rows {
		line := h.rows[i].String()[:h.ends[i]]
		if i%4 == 0 {
			line = b.Palette.labels(line)
		} else {
			line = b.Palette.branches(line)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Width returns the number of display cells of the widest row Horizontal
// produces for the subtree at entrance, not counting trailing fill.
func Width[T any](entrance arbor.ConstTraverser[T], label func(T) string, b Branches) int {
	if !entrance.Valid() || b.validate() != nil {
		return 0
	}
	b = b.normalized()
	return measure(entrance, labeler(label), &b).width
}

type hlayout struct {
	b    Branches
	top  *box
	rows []strings.Builder
	ends []int // byte length of each row up to its last content
}

func newHLayout[T any](entrance arbor.ConstTraverser[T], label func(T) string, b Branches) *hlayout {
	b = b.normalized()
	h := &hlayout{b: b}
	h.top = measure(entrance, labeler(label), &h.b)
	depth := arbor.Depth(entrance)
	h.rows = make([]strings.Builder, depth*4-3)
	h.ends = make([]int, len(h.rows))
	tracer().Debugf("horizontal layout: depth %d, width %d", depth, h.top.width)
	h.render(h.top, 0, 0, 0)
	return h
}

func measure[T any](c arbor.ConstTraverser[T], label func(arbor.ConstTraverser[T]) string, b *Branches) *box {
	bx := &box{label: label(c)}
	if bx.label != "" {
		bx.cells = displayWidth(bx.label, b.Context)
	}
	if bx.cells == 0 {
		bx.label, bx.cells, bx.blank = string(b.Fill), 1, true
	}
	k := c.ChildCount()
	if k == 0 {
		bx.width = bx.cells
		return bx
	}
	bx.children = make([]*box, k)
	w := 0
	for i := range k {
		bx.children[i] = measure(c.Child(i), label, b)
		w += bx.children[i].width
	}
	w += (k - 1) * b.Sep
	bx.width = max(bx.cells, w)
	return bx
}

func (h *hlayout) fill(row, n int) {
	for range n {
		h.rows[row].WriteRune(h.b.Fill)
	}
}

// content appends s to a row and moves the row's end behind it.
func (h *hlayout) content(row int, s string) {
	h.rows[row].WriteString(s)
	h.ends[row] = h.rows[row].Len()
}

func (h *hlayout) label(row int, bx *box) {
	if bx.blank {
		h.rows[row].WriteString(bx.label)
		return
	}
	h.content(row, bx.label)
}

// render appends the rows of bx, from its label row down to the bottom of the
// layout. Padding is extra fill on the left and right which an ancestor with
// a wide label hands down to its outmost descendants.
func (h *hlayout) render(bx *box, depth, padLeft, padRight int) {
	sep := h.b.Sep
	total := padLeft + bx.width + sep + padRight
	row := depth * 4
	if len(bx.children) == 0 {
		h.fill(row, padLeft)
		h.label(row, bx)
		h.fill(row, sep+padRight)
		for r := row + 1; r < len(h.rows); r++ {
			h.fill(r, total)
		}
		return
	}
	mids := make([]int, len(bx.children))
	cw := 0
	for i, ch := range bx.children {
		mids[i] = cw + (ch.width+1)/2
		cw += ch.width + sep
	}
	cw -= sep
	innerLeft, innerRight := padLeft, padRight
	if diff := bx.cells - cw; diff > 0 {
		innerLeft += diff / 2
		innerRight += diff - diff/2
	}
	// label row
	left := padLeft + (bx.width-bx.cells)/2
	h.fill(row, left)
	h.label(row, bx)
	h.fill(row, total-left-bx.cells)
	// line up to the parent
	up := padLeft + (bx.width-1)/2
	h.fill(row+1, up)
	h.content(row+1, string(h.b.Vert))
	h.fill(row+1, total-up-1)
	// branch and lines down to the children
	branch := make([]rune, total)
	down := make([]rune, total)
	for i := range total {
		branch[i], down[i] = h.b.Fill, h.b.Fill
	}
	below := make(map[int]bool, len(mids))
	first, last := innerLeft+mids[0]-1, innerLeft+mids[len(mids)-1]-1
	for x := first; x <= last; x++ {
		branch[x] = h.b.Hor
	}
	for _, m := range mids {
		x := innerLeft + m - 1
		branch[x], down[x] = h.b.Tee, h.b.Vert
		below[x] = true
	}
	branch[first], branch[last] = h.b.Left, h.b.Right
	switch {
	case len(mids) == 1:
		branch[up] = h.b.Vert
	case below[up]:
		branch[up] = h.b.Bottom
	default:
		branch[up] = h.b.Pass
	}
	cut := max(last, up) + 1
	h.content(row+2, string(branch[:cut]))
	h.rows[row+2].WriteString(string(branch[cut:]))
	h.content(row+3, string(down[:last+1]))
	h.rows[row+3].WriteString(string(down[last+1:]))
	for i, ch := range bx.children {
		l, r := 0, 0
		if i == 0 {
			l = innerLeft
		}
		if i == len(bx.children)-1 {
			r = innerRight
		}
		h.render(ch, depth+1, l, r)
	}
}
