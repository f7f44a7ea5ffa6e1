package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/arbor"
)

// Dot outputs the subtree at entrance in Graphviz DOT format. Nodes are
// numbered in pre-order. Leaves are drawn as boxes, inner nodes as filled
// ellipses.
func Dot[T any](w io.Writer, entrance arbor.ConstTraverser[T], label func(T) string) error {
	lbl := labeler(label)
	bw := bufio.NewWriter(w)
	bw.WriteString("strict digraph {\n")
	bw.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	var nodelist, edgelist strings.Builder
	id := 0
	var visit func(c arbor.ConstTraverser[T]) int
	visit = func(c arbor.ConstTraverser[T]) int {
		id++
		me := id
		fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", me, dotEscape(lbl(c)), nodeDotStyles(c.IsLeaf()))
		for ch := range c.Children() {
			fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", me, visit(ch))
		}
		return me
	}
	if entrance.Valid() {
		visit(entrance)
	}
	bw.WriteString(nodelist.String())
	bw.WriteString(edgelist.String())
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box,fillcolor=white"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=ellipse"
	}
	return s
}

var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}
