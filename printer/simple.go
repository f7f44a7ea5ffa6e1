package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/arbor"
)

// labeler returns label, or fmt.Sprint if label is nil.
func labeler[T any](label func(T) string) func(arbor.ConstTraverser[T]) string {
	if label == nil {
		return func(c arbor.ConstTraverser[T]) string { return fmt.Sprint(c.Value()) }
	}
	return func(c arbor.ConstTraverser[T]) string { return label(c.Value()) }
}

// Simple writes the subtree at entrance in pre-order, one node per line,
// each line indented according to the depth of the node. Nothing is written
// for an invalid entrance.
func Simple[T any](w io.Writer, entrance arbor.ConstTraverser[T], label func(T) string, indent Indent) error {
	if err := indent.validate(); err != nil {
		return err
	}
	if !entrance.Valid() {
		return nil
	}
	lbl := labeler(label)
	bw := bufio.NewWriter(w)
	fill := strings.Repeat(string(indent.Char), indent.Width)
	for c, depth := range arbor.PreOrder(entrance) {
		bw.WriteString(strings.Repeat(fill, depth))
		bw.WriteString(indent.Palette.labels(lbl(c)))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
