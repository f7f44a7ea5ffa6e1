/*
Package arbor offers a generic, mutable tree container.

Trees

A Tree stores values of an arbitrary type T in nodes which may have an
arbitrary number of ordered children. Nodes know their parent, and children
keep the order in which they have been inserted. Trees are built by
repeatedly inserting values relative to traversers:

	t := arbor.New[string]()
	root, _ := t.Insert(t.Entrance(), "+")    // creates the root
	t.AppendChild(root, "1")
	t.AppendChild(root, "2")

Storage

All nodes of a tree live in a single arena and refer to each other by index.
Growing the arena never invalidates parent back-references, nor does moving a
tree from one variable to another.

Traversers

A Traverser is a lightweight, non-owning reference to a node. It doubles as a
random-access iterator over the sibling sequence holding that node, so the
same type serves both for visiting a node and for iterating over the
children of its parent:

	for c := root.Begin(); c.Valid(); c = c.Next() {
	    fmt.Println(c.Value())
	}

Traverser comes with read-write access, ConstTraverser with read-only
access. A Traverser converts to a ConstTraverser with Const(); there is no
way back.

Any operation which inserts or removes entries of a sibling sequence
invalidates all traversers previously obtained into that very sequence,
including traversers held by the caller across the call. Traversers into
unrelated parts of the tree stay valid. Tree checks this with generation
counters and panics with ErrStaleTraverser on use of an invalidated
traverser.

Algorithms

NodeCount, LeafCount, Depth and EqualTree are written purely in terms of the
cursor interfaces Shape and Valued. Package printer renders trees through the
same interfaces.

Concurrency

Trees are not safe for concurrent mutation. Concurrent read-only traversal is
fine as long as no mutation is interleaved.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package arbor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'arbor'
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}

// TreeError is an error type for the arbor module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrInsertBeforeRoot is flagged when inserting a sibling in front of the root
// of a tree. A tree has exactly one root.
const ErrInsertBeforeRoot = TreeError("attempted to insert an element before the root of a tree")

// ErrInsertBeforeEnd is flagged when inserting in front of a past-the-end
// traverser of a non-empty tree. A past-the-end traverser does not know its
// parent node; clients should use AppendChild instead.
const ErrInsertBeforeEnd = TreeError("attempted to insert an element before a past-the-end traverser of a non-empty tree; use AppendChild")

// ErrNoNode is flagged whenever an operation needs a traverser referencing an
// actual node, but got a past-the-end or null traverser.
const ErrNoNode = TreeError("traverser does not reference a node")

// ErrForeignTraverser is flagged whenever a tree is handed a traverser into
// a different tree.
const ErrForeignTraverser = TreeError("traverser belongs to a different tree")

// ErrStaleTraverser is the panic value for use of a traverser whose sibling
// sequence has been modified after the traverser had been obtained.
const ErrStaleTraverser = TreeError("use of an invalidated traverser")

// ErrCorruptTree is flagged by Check if a tree violates a structural
// invariant.
const ErrCorruptTree = TreeError("tree structure is corrupt")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
