// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
)

// Group is a node with an ordered list of children. Children draw in
// ascending zIndex order, insertion order breaking ties, and inherit
// the group's transform.
//
// A group's bounds are the union of its children's bounds, unless the
// group has been given an explicit positive size, in which case the
// size box is authoritative.
//
// A group can cache its subtree render in an offscreen bitmap, see
// [Group.SetCacheRendering].
type Group struct {
	NodeBase

	// Children is the list of child nodes in insertion order. Use
	// [Group.AddChild] and [Group.RemoveChild] to modify it so parent
	// links, draw order, and caches stay consistent.
	Children []Node `copier:"-"`

	// sorted is the cached draw order view of Children.
	sorted    []Node
	sortDirty bool

	// nextOrder and minOrder bracket the insertion sequence numbers
	// handed out so far, so front and back moves can always mint a
	// number beyond every existing one.
	nextOrder int64
	minOrder  int64

	caching    bool
	cache      *paint.Bitmap
	cacheMin   math32.Vector2
	cacheDirty bool
}

var _ Node = (*Group)(nil)

// NewGroup returns a new initialized group.
func NewGroup() *Group {
	g := &Group{}
	InitNode(g)
	return g
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int { return len(g.Children) }

// Child returns the child at the given insertion index.
func (g *Group) Child(i int) Node { return g.Children[i] }

// AddChild appends the given node to this group's children and
// returns it. The node is detached from any previous parent first.
// Adding a child invalidates the group's draw order, bounds, and
// render cache.
func (g *Group) AddChild(n Node) Node {
	if n == nil {
		panic("scene.Group.AddChild: nil child")
	}
	if g.This == nil {
		InitNode(g)
	}
	nb := n.AsNodeBase()
	if nb.This == nil {
		InitNode(n)
	}
	nb.This = n
	if nb.Parent != nil {
		if pg, ok := nb.Parent.(*Group); ok {
			pg.RemoveChild(n)
		}
	}
	nb.Parent = g
	nb.order = g.nextOrder
	g.nextOrder++
	g.Children = append(g.Children, n)
	g.structureChanged()
	g.markBoundsDirty()
	return n
}

// RemoveChild removes the given node from this group's children and
// reports whether it was found. The node itself is not destroyed.
func (g *Group) RemoveChild(n Node) bool {
	idx := g.childIndex(n)
	if idx < 0 {
		return false
	}
	n.AsNodeBase().Parent = nil
	g.Children = slices.Delete(g.Children, idx, idx+1)
	g.structureChanged()
	g.markBoundsDirty()
	return true
}

// RemoveAll removes all children without destroying them.
func (g *Group) RemoveAll() {
	for _, child := range g.Children {
		child.AsNodeBase().Parent = nil
	}
	g.Children = nil
	g.structureChanged()
	g.markBoundsDirty()
}

// structureChanged invalidates the caches derived from the child
// list: the sorted draw order and the render cache.
func (g *Group) structureChanged() {
	g.sortDirty = true
	g.cacheDirty = true
}

func (g *Group) childIndex(n Node) int {
	return slices.Index(g.Children, n)
}

// SortedChildren returns the children in draw order: ascending
// zIndex, insertion order breaking ties. The returned slice is the
// group's cached view; callers must not modify it.
func (g *Group) SortedChildren() []Node {
	if !g.sortDirty && g.sorted != nil {
		return g.sorted
	}
	g.sorted = append(g.sorted[:0], g.Children...)
	slices.SortStableFunc(g.sorted, func(a, b Node) int {
		ab, bb := a.AsNodeBase(), b.AsNodeBase()
		if ab.zIndex != bb.zIndex {
			return cmp.Compare(ab.zIndex, bb.zIndex)
		}
		return cmp.Compare(ab.order, bb.order)
	})
	g.sortDirty = false
	return g.sorted
}

// ForceResort invalidates the cached draw order so the next draw
// re-sorts the children. Call it after changing child zIndex values,
// which deliberately do not auto-invalidate (see
// [NodeBase.SetZIndex]).
func (g *Group) ForceResort() {
	g.sortDirty = true
	g.cacheDirty = true
}

// BringToFront moves the given child to the end of the draw order, on
// top of every sibling, and reports whether it was a child of this
// group.
func (g *Group) BringToFront(n Node) bool {
	if g.childIndex(n) < 0 {
		return false
	}
	nb := n.AsNodeBase()
	nb.zIndex = g.maxZIndex()
	nb.order = g.nextOrder
	g.nextOrder++
	g.structureChanged()
	return true
}

// SendToBack moves the given child to the start of the draw order,
// below every sibling, and reports whether it was a child of this
// group.
func (g *Group) SendToBack(n Node) bool {
	if g.childIndex(n) < 0 {
		return false
	}
	nb := n.AsNodeBase()
	nb.zIndex = g.minZIndex()
	g.minOrder--
	nb.order = g.minOrder
	g.structureChanged()
	return true
}

// BringForward swaps the given child with the sibling drawn
// immediately after it, moving it one step toward the front. It
// reports whether the node was a child; a child already at the front
// is left in place.
func (g *Group) BringForward(n Node) bool {
	sorted := g.SortedChildren()
	i := slices.Index(sorted, n)
	if i < 0 {
		return false
	}
	if i < len(sorted)-1 {
		g.swapOrder(n, sorted[i+1])
	}
	return true
}

// SendBackward swaps the given child with the sibling drawn
// immediately before it, moving it one step toward the back. It
// reports whether the node was a child; a child already at the back
// is left in place.
func (g *Group) SendBackward(n Node) bool {
	sorted := g.SortedChildren()
	i := slices.Index(sorted, n)
	if i < 0 {
		return false
	}
	if i > 0 {
		g.swapOrder(n, sorted[i-1])
	}
	return true
}

// swapOrder exchanges the sort keys of two children, which exchanges
// exactly their two positions in the draw order.
func (g *Group) swapOrder(a, b Node) {
	ab, bb := a.AsNodeBase(), b.AsNodeBase()
	ab.zIndex, bb.zIndex = bb.zIndex, ab.zIndex
	ab.order, bb.order = bb.order, ab.order
	g.structureChanged()
}

func (g *Group) maxZIndex() int {
	z := 0
	for i, child := range g.Children {
		cz := child.AsNodeBase().zIndex
		if i == 0 || cz > z {
			z = cz
		}
	}
	return z
}

func (g *Group) minZIndex() int {
	z := 0
	for i, child := range g.Children {
		cz := child.AsNodeBase().zIndex
		if i == 0 || cz < z {
			z = cz
		}
	}
	return z
}

// Update forwards to the active children in draw order. Children
// added or removed during the walk take effect next frame.
func (g *Group) Update(dt float32) {
	for _, child := range g.SortedChildren() {
		if !child.AsNodeBase().Active {
			continue
		}
		child.Update(dt)
	}
}

// Draw applies the group's transform and draws the children in draw
// order, each wrapped in Save/Restore so sibling transforms stay
// independent. If render caching is enabled, the subtree is drawn
// from the cached bitmap instead, repainting it only when marked
// dirty.
func (g *Group) Draw(sf paint.Surface) {
	if !g.Visible {
		return
	}
	g.ApplyTransform(sf)
	if g.caching {
		g.drawCached(sf)
		return
	}
	g.drawChildren(sf)
}

func (g *Group) drawChildren(sf paint.Surface) {
	for _, child := range g.SortedChildren() {
		if !child.AsNodeBase().Visible {
			continue
		}
		sf.Save()
		child.Draw(sf)
		sf.Restore()
	}
}

// drawCached repaints the cache bitmap if needed and blits it. The
// bitmap covers the group's content bounds snapped to the pixel grid,
// and the children are drawn into it translated by the negative
// bounds origin, so blitting it back at that origin reproduces the
// direct drawing exactly.
func (g *Group) drawCached(sf paint.Surface) {
	box := g.contentBounds()
	if box.IsEmpty() {
		return
	}
	rect := box.ToRect()
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if g.cache == nil {
		g.cache = paint.NewBitmap(w, h)
		g.cacheDirty = true
	} else if g.cache.Resize(w, h) {
		g.cacheDirty = true
	}
	min := math32.Vector2FromPoint(rect.Min)
	if min != g.cacheMin {
		g.cacheMin = min
		g.cacheDirty = true
	}
	if g.cacheDirty {
		csf := paint.NewImageSurfaceFor(g.cache.Image)
		csf.Clear(color.RGBA{})
		csf.Translate(-min.X, -min.Y)
		g.drawChildren(csf)
		g.cache.Update()
		g.cacheDirty = false
	}
	sf.DrawBitmap(g.cache, min.X, min.Y, float32(w), float32(h))
}

// CacheRendering reports whether render caching is enabled.
func (g *Group) CacheRendering() bool { return g.caching }

// SetCacheRendering enables or disables drawing this group's subtree
// through an offscreen bitmap. Enabling marks the cache for repaint;
// disabling releases the bitmap.
//
// Structural changes (adding, removing, or reordering children)
// repaint the cache automatically. Purely visual changes inside the
// subtree, such as a child moving or changing color, do not: call
// [Group.InvalidateCache] after making them.
func (g *Group) SetCacheRendering(on bool) *Group {
	if g.caching == on {
		return g
	}
	g.caching = on
	if on {
		g.cacheDirty = true
	} else {
		g.releaseCache()
	}
	return g
}

// InvalidateCache marks the render cache for repaint on the next
// draw. It is a no-op if caching is disabled.
func (g *Group) InvalidateCache() {
	if g.caching {
		g.cacheDirty = true
	}
}

func (g *Group) releaseCache() {
	g.cache = nil
	g.cacheDirty = false
}

// SetExplicitSize gives the group a fixed content size, overriding
// the union of the children's bounds for bounds and cache sizing.
func (g *Group) SetExplicitSize(w, h float32) *Group {
	g.SetSize(w, h)
	return g
}

// ClearExplicitSize reverts the group to deriving its content size
// from its children.
func (g *Group) ClearExplicitSize() *Group {
	g.SetSize(0, 0)
	return g
}

// contentBounds returns the group's content box in its own local
// space, before its own transform: the explicit size box if the group
// has a positive size, otherwise the union of the children's bounds.
// An empty group with no explicit size has empty content bounds.
func (g *Group) contentBounds() math32.Box2 {
	sz := g.Size()
	if sz.X > 0 && sz.Y > 0 {
		return math32.B2(0, 0, sz.X, sz.Y)
	}
	box := math32.B2Empty()
	for _, child := range g.Children {
		box.ExpandByBox(child.Bounds())
	}
	return box
}

// Bounds returns the group's bounding box in its parent's space: the
// content bounds mapped through the group's own transform. The box is
// cached and recomputed only after a transform or structure change
// anywhere below.
func (g *Group) Bounds() math32.Box2 {
	if !g.boundsDirty {
		return g.bounds
	}
	g.bounds = g.computeBounds(g.contentBounds())
	g.boundsDirty = false
	return g.bounds
}

// TranslateChildren moves every child by the given delta. The group's
// own transform is untouched.
func (g *Group) TranslateChildren(dx, dy float32) *Group {
	for _, child := range g.Children {
		child.AsNodeBase().TranslateBy(dx, dy)
	}
	return g
}

// RotateChildren adds the given angle in degrees to every child's own
// rotation. Each child spins around its own origin; this is not an
// orbit around the group center.
func (g *Group) RotateChildren(deg float32) *Group {
	for _, child := range g.Children {
		child.AsNodeBase().RotateBy(deg)
	}
	return g
}

// ScaleChildren multiplies every child's scale by the given factors.
func (g *Group) ScaleChildren(sx, sy float32) *Group {
	for _, child := range g.Children {
		child.AsNodeBase().ScaleBy(sx, sy)
	}
	return g
}

// WalkDown calls fun on this group and then on every node below it,
// depth first in insertion order. If fun returns [Break] the
// subtree below that node is pruned; siblings are still visited.
func (g *Group) WalkDown(fun func(n Node) bool) {
	var self Node = g
	if g.This != nil {
		self = g.This
	}
	g.walkDown(self, fun)
}

func (g *Group) walkDown(self Node, fun func(n Node) bool) {
	if !fun(self) {
		return
	}
	for _, child := range g.Children {
		if sub, ok := child.(*Group); ok {
			sub.walkDown(child, fun)
		} else {
			fun(child)
		}
	}
}

// FindName returns the first node in this subtree whose name matches,
// in depth first order, or nil if none does.
func (g *Group) FindName(name string) Node {
	var found Node
	g.WalkDown(func(n Node) bool {
		if found != nil {
			return Break
		}
		if n.AsNodeBase().Name == name {
			found = n
			return Break
		}
		return Continue
	})
	return found
}

// CopyFieldsFrom copies the group's settings and clones its children.
func (g *Group) CopyFieldsFrom(from Node) {
	fg, ok := from.(*Group)
	if !ok {
		g.NodeBase.CopyFieldsFrom(from)
		return
	}
	g.NodeBase.CopyFieldsFrom(from)
	g.caching = fg.caching
	g.RemoveAll()
	for _, child := range fg.Children {
		g.AddChild(Clone(child))
	}
}

// Destroy destroys all children, releases the render cache, and
// detaches the group.
func (g *Group) Destroy() {
	for _, child := range g.Children {
		child.Destroy()
	}
	g.Children = nil
	g.sorted = nil
	g.releaseCache()
	g.NodeBase.Destroy()
}
