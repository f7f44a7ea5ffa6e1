/*
Package html builds trees from HTML fragments and renders trees as nested
HTML lists.

Parse reads an HTML fragment and returns a tree of Elements, with a synthetic
root holding the top level nodes of the fragment:

	tree, err := html.Parse(strings.NewReader("<p>Hello <b>World</b></p>"))

Render writes any tree as nested <ul>/<li> lists.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2021, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'arbor'
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}
