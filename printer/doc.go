/*
Package printer renders trees as text.

Renderers work on read-only traversers and write to an io.Writer. Every
renderer accepts an optional label function, converting node values to
strings; if it is nil, values are formatted with fmt.Sprint.

Simple writes one line per node in pre-order, indented by depth:

	+
	  1
	  2

Horizontal lays out a tree top down, centering every label over its
children, with four text rows per level of the tree. Branch characters are
configurable (see DefaultBranches and BoxBranches):

	    +
	    :
	....:..
	:     :
	1     *
	      :
	    ..:..
	    :   :
	    2   3

Dot writes a Graphviz DOT digraph.

Label widths are measured in display cells according to UAX#11, thus East
Asian wide characters are accounted for correctly in horizontal layouts.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2021, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package printer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'arbor'
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}
