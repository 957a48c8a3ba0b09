// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the retained-mode 2D scene graph: spatial
// nodes with lazily computed bounding boxes, and groups that draw
// their children in deterministic z-order with optional render-to-
// bitmap caching.
//
// The graph is single threaded and frame driven: an external scheduler
// calls [Node.Update] once per tick with the elapsed time, followed by
// exactly one [Node.Draw], both on the same goroutine.
package scene

import (
	"fmt"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
)

// Node is the interface that all scene graph nodes satisfy.
// [NodeBase] provides the base implementation; concrete node types
// embed it and override the methods they need.
type Node interface {

	// AsNodeBase returns the [NodeBase] of this node.
	AsNodeBase() *NodeBase

	// Update advances the node's state by dt seconds. Groups forward
	// to their active children in sorted order.
	Update(dt float32)

	// Draw renders the node through the given surface. Draw applies
	// the node's own transform to the surface and assumes the caller
	// wraps the call in Save/Restore so the transform cannot leak
	// to siblings.
	Draw(sf paint.Surface)

	// Bounds returns the node's axis-aligned bounding box in its
	// parent's coordinate space, recomputing it only if a transform
	// field changed since the last read.
	Bounds() math32.Box2

	// CopyFieldsFrom copies the fields of the given node onto this
	// node, excluding parent and child links.
	CopyFieldsFrom(from Node)

	// Destroy releases the node's resources. Groups destroy their
	// children recursively.
	Destroy()
}

// Walk return values, for readability.
const (
	// Continue = true can be returned from walk functions to continue
	// to the children of the current node.
	Continue = true

	// Break = false can be returned from walk functions to not
	// continue to the children of the current node.
	Break = false
)

// InvalidPropertyError is the panic value raised by transform setters
// given a NaN or infinite value. Malformed values are rejected at the
// call site, before any field or cache is touched.
type InvalidPropertyError struct {

	// Node is the name of the node whose setter was called.
	Node string

	// Property is the name of the rejected property.
	Property string

	// Value is the rejected value.
	Value float32
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("scene: invalid value %v for property %s of node %q", e.Value, e.Property, e.Node)
}

// InitNode initializes the given node's base state: the self reference
// used for virtual dispatch, unit scale, and the visible and active
// flags. Constructors of node types must call it (the New* functions
// here do).
func InitNode(n Node) {
	n.AsNodeBase().init(n)
}

// Clone returns a new node of the same concrete type as the given
// node, with all fields copied via [Node.CopyFieldsFrom]. Children of
// groups are cloned recursively; the clone has no parent.
func Clone(n Node) Node {
	nn := newOfSameType(n)
	InitNode(nn)
	nn.CopyFieldsFrom(n)
	return nn
}
