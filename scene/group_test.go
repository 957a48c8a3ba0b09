// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guinetik/gcanvas-sub007/base/tolassert"
	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// tickNode counts Update calls, for testing update forwarding.
type tickNode struct {
	NodeBase
	ticks int
	total float32
}

func (tn *tickNode) Update(dt float32) {
	tn.ticks++
	tn.total += dt
}

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.AsNodeBase().Name
	}
	return out
}

func namedRect(name string, w, h float32) *Rect {
	r := NewRect(w, h)
	r.SetName(name)
	return r
}

func TestAddRemoveChildren(t *testing.T) {
	g := NewGroup()
	a := namedRect("a", 10, 10)
	b := namedRect("b", 10, 10)

	got := g.AddChild(a)
	assert.Same(t, a, got)
	g.AddChild(b)
	assert.Equal(t, 2, g.NumChildren())
	assert.Same(t, g, a.Parent)
	assert.Same(t, a, g.Child(0))

	assert.True(t, g.RemoveChild(a))
	assert.Nil(t, a.Parent)
	assert.Equal(t, 1, g.NumChildren())
	assert.False(t, g.RemoveChild(a))

	g.RemoveAll()
	assert.Equal(t, 0, g.NumChildren())
	assert.Nil(t, b.Parent)
}

func TestAddChildReparents(t *testing.T) {
	g1 := NewGroup()
	g2 := NewGroup()
	a := namedRect("a", 10, 10)

	g1.AddChild(a)
	g2.AddChild(a)

	assert.Equal(t, 0, g1.NumChildren())
	assert.Equal(t, 1, g2.NumChildren())
	assert.Same(t, g2, a.Parent)
}

func TestAddChildNilPanics(t *testing.T) {
	g := NewGroup()
	assert.Panics(t, func() { g.AddChild(nil) })
}

func TestSortInsertionOrderBreaksTies(t *testing.T) {
	g := NewGroup()
	for _, name := range []string{"a", "b", "c"} {
		g.AddChild(namedRect(name, 10, 10))
	}
	assert.Equal(t, []string{"a", "b", "c"}, names(g.SortedChildren()))
}

func TestSortByZIndex(t *testing.T) {
	g := NewGroup()
	a := namedRect("a", 10, 10)
	b := namedRect("b", 10, 10)
	c := namedRect("c", 10, 10)
	a.SetZIndex(2)
	b.SetZIndex(-1)
	g.AddChild(a)
	g.AddChild(b)
	g.AddChild(c)

	assert.Equal(t, []string{"b", "c", "a"}, names(g.SortedChildren()))
}

func TestZIndexNeedsForceResort(t *testing.T) {
	g := NewGroup()
	a := namedRect("a", 10, 10)
	b := namedRect("b", 10, 10)
	g.AddChild(a)
	g.AddChild(b)

	assert.Equal(t, []string{"a", "b"}, names(g.SortedChildren()))

	// zIndex writes alone leave the sorted view stale
	a.SetZIndex(10)
	assert.Equal(t, []string{"a", "b"}, names(g.SortedChildren()))

	g.ForceResort()
	assert.Equal(t, []string{"b", "a"}, names(g.SortedChildren()))
}

func TestAddChildResorts(t *testing.T) {
	g := NewGroup()
	g.AddChild(namedRect("a", 10, 10))
	assert.Equal(t, []string{"a"}, names(g.SortedChildren()))

	under := namedRect("under", 10, 10)
	under.SetZIndex(-5)
	g.AddChild(under)
	assert.Equal(t, []string{"under", "a"}, names(g.SortedChildren()))
}

func TestReorderOps(t *testing.T) {
	g := NewGroup()
	a := namedRect("a", 10, 10)
	b := namedRect("b", 10, 10)
	c := namedRect("c", 10, 10)
	g.AddChild(a)
	g.AddChild(b)
	g.AddChild(c)

	require.True(t, g.BringToFront(a))
	assert.Equal(t, []string{"b", "c", "a"}, names(g.SortedChildren()))

	require.True(t, g.SendToBack(c))
	assert.Equal(t, []string{"c", "b", "a"}, names(g.SortedChildren()))

	require.True(t, g.BringForward(b))
	assert.Equal(t, []string{"c", "a", "b"}, names(g.SortedChildren()))

	require.True(t, g.SendBackward(b))
	assert.Equal(t, []string{"c", "b", "a"}, names(g.SortedChildren()))

	// already at the edges: found, no movement
	require.True(t, g.BringForward(a))
	assert.Equal(t, []string{"c", "b", "a"}, names(g.SortedChildren()))
	require.True(t, g.SendBackward(c))
	assert.Equal(t, []string{"c", "b", "a"}, names(g.SortedChildren()))

	stranger := namedRect("x", 1, 1)
	assert.False(t, g.BringToFront(stranger))
	assert.False(t, g.SendToBack(stranger))
	assert.False(t, g.BringForward(stranger))
	assert.False(t, g.SendBackward(stranger))
}

func TestDrawOrderPixels(t *testing.T) {
	g := NewGroup()
	rr := namedRect("red", 10, 10)
	rr.SetFill(paint.Uniform(red))
	rr.SetPos(5, 5)
	rb := namedRect("blue", 10, 10)
	rb.SetFill(paint.Uniform(blue))
	rb.SetPos(5, 5)
	g.AddChild(rr)
	g.AddChild(rb)

	sf := paint.NewImageSurface(20, 20)
	g.Draw(sf)
	assert.Equal(t, blue, sf.Image().RGBAAt(10, 10))

	g.SendToBack(rb)
	sf2 := paint.NewImageSurface(20, 20)
	g.Draw(sf2)
	assert.Equal(t, red, sf2.Image().RGBAAt(10, 10))
}

func TestGroupBounds(t *testing.T) {
	g := NewGroup()
	assert.True(t, g.Bounds().IsEmpty())

	a := NewRect(30, 30)
	b := NewRect(30, 30)
	b.SetPos(50, 10)
	g.AddChild(a)
	g.AddChild(b)
	assertBox(t, math32.B2(0, 0, 80, 40), g.Bounds())

	// explicit size overrides the union
	g.SetSize(50, 50)
	assertBox(t, math32.B2(0, 0, 50, 50), g.Bounds())

	// zero size goes back to deriving from children
	g.SetSize(0, 0)
	assertBox(t, math32.B2(0, 0, 80, 40), g.Bounds())
}

func TestGroupBoundsTransformed(t *testing.T) {
	g := NewGroup()
	g.SetPos(100, 100)
	r := NewRect(20, 20)
	r.SetPos(10, 10)
	g.AddChild(r)
	assertBox(t, math32.B2(110, 110, 130, 130), g.Bounds())
}

func TestGroupBoundsRotatedChild(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	r.SetRotationDegrees(90)
	g.AddChild(r)
	assertBox(t, math32.B2(-10, 0, 0, 10), g.Bounds())
}

func TestTranslateChildren(t *testing.T) {
	g := NewGroup()
	var rects []*Rect
	for _, x := range []float32{0, 50, 100} {
		r := NewRect(30, 30)
		r.SetPos(x, 0)
		g.AddChild(r)
		rects = append(rects, r)
	}

	g.TranslateChildren(10, 20)
	assert.Equal(t, math32.Vec2(10, 20), rects[0].Pos())
	assert.Equal(t, math32.Vec2(60, 20), rects[1].Pos())
	assert.Equal(t, math32.Vec2(110, 20), rects[2].Pos())

	g.RotateChildren(90)
	for _, r := range rects {
		tolassert.EqualTol(t, math32.Pi/2, r.Rotation(), 1.0e-6)
	}

	g.ScaleChildren(2, 2)
	for _, r := range rects {
		assert.Equal(t, math32.Vec2(2, 2), r.Scale())
	}
}

func TestUpdateForwarding(t *testing.T) {
	g := NewGroup()
	a := &tickNode{}
	b := &tickNode{}
	g.AddChild(a)
	g.AddChild(b)
	b.SetActive(false)

	g.Update(0.016)
	g.Update(0.016)

	assert.Equal(t, 2, a.ticks)
	tolassert.EqualTol(t, 0.032, a.total, 1.0e-6)
	assert.Equal(t, 0, b.ticks)
}

// orderNode records the order the update pass reaches it.
type orderNode struct {
	NodeBase
	log *[]string
}

func (on *orderNode) Update(dt float32) {
	*on.log = append(*on.log, on.Name)
}

func TestUpdateSortedOrder(t *testing.T) {
	var visited []string
	g := NewGroup()
	a := &orderNode{log: &visited}
	a.SetName("a").SetZIndex(5)
	b := &orderNode{log: &visited}
	b.SetName("b")
	g.AddChild(a)
	g.AddChild(b)

	g.Update(0.016)
	assert.Equal(t, []string{"b", "a"}, visited)

	// inactive children are skipped, the rest keep draw order
	visited = nil
	b.SetActive(false)
	g.Update(0.016)
	assert.Equal(t, []string{"a"}, visited)
}

func TestCacheMatchesDirectDrawing(t *testing.T) {
	build := func() (*Group, *Rect, *Rect) {
		g := NewGroup()
		g.SetPos(7, 5)
		r1 := NewRect(10, 10)
		r1.SetFill(paint.Uniform(red))
		r2 := NewRect(8, 8)
		r2.SetFill(paint.Uniform(blue))
		r2.SetPos(6, 6)
		g.AddChild(r1)
		g.AddChild(r2)
		return g, r1, r2
	}

	g, _, _ := build()
	direct := paint.NewImageSurface(32, 32)
	g.Draw(direct)

	gc, _, _ := build()
	gc.SetCacheRendering(true)
	cached := paint.NewImageSurface(32, 32)
	gc.Draw(cached)
	require.NotNil(t, gc.cache)

	assert.True(t, bytes.Equal(direct.Image().Pix, cached.Image().Pix),
		"cached draw must be pixel identical to direct draw")

	// a second draw reuses the bitmap without repainting it
	v := gc.cache.Version
	again := paint.NewImageSurface(32, 32)
	gc.Draw(again)
	assert.Equal(t, v, gc.cache.Version)
	assert.True(t, bytes.Equal(direct.Image().Pix, again.Image().Pix))
}

func TestCacheInvalidation(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	r.SetFill(paint.Uniform(red))
	g.AddChild(r)
	g.SetCacheRendering(true)

	sf := paint.NewImageSurface(16, 16)
	g.Draw(sf)
	assert.Equal(t, red, sf.Image().RGBAAt(5, 5))

	// a visual-only change is not picked up until invalidated
	r.Fill = paint.Uniform(green)
	stale := paint.NewImageSurface(16, 16)
	g.Draw(stale)
	assert.Equal(t, red, stale.Image().RGBAAt(5, 5))

	g.InvalidateCache()
	fresh := paint.NewImageSurface(16, 16)
	g.Draw(fresh)
	assert.Equal(t, green, fresh.Image().RGBAAt(5, 5))
}

func TestCacheStructuralAutoInvalidation(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	r.SetFill(paint.Uniform(red))
	g.AddChild(r)
	g.SetCacheRendering(true)

	sf := paint.NewImageSurface(16, 16)
	g.Draw(sf)

	// adding a child repaints the cache without an explicit call
	over := NewRect(10, 10)
	over.SetFill(paint.Uniform(blue))
	g.AddChild(over)

	sf2 := paint.NewImageSurface(16, 16)
	g.Draw(sf2)
	assert.Equal(t, blue, sf2.Image().RGBAAt(5, 5))

	// so does reordering
	g.SendToBack(over)
	sf3 := paint.NewImageSurface(16, 16)
	g.Draw(sf3)
	assert.Equal(t, red, sf3.Image().RGBAAt(5, 5))
}

func TestCacheRelease(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	g.AddChild(r)
	g.SetCacheRendering(true)
	assert.True(t, g.CacheRendering())

	sf := paint.NewImageSurface(16, 16)
	g.Draw(sf)
	require.NotNil(t, g.cache)

	g.SetCacheRendering(false)
	assert.Nil(t, g.cache)
	assert.False(t, g.CacheRendering())
}

func TestCacheEmptyGroup(t *testing.T) {
	g := NewGroup()
	g.SetCacheRendering(true)
	sf := paint.NewImageSurface(8, 8)
	g.Draw(sf)
	assert.Nil(t, g.cache)
}

func TestVisibilitySkipsDrawing(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	r.SetFill(paint.Uniform(red))
	g.AddChild(r)

	r.SetVisible(false)
	sf := paint.NewImageSurface(16, 16)
	g.Draw(sf)
	assert.Equal(t, color.RGBA{}, sf.Image().RGBAAt(5, 5))

	r.SetVisible(true)
	g.SetVisible(false)
	sf2 := paint.NewImageSurface(16, 16)
	g.Draw(sf2)
	assert.Equal(t, color.RGBA{}, sf2.Image().RGBAAt(5, 5))
}

func TestWalkDownAndFindName(t *testing.T) {
	root := NewGroup()
	root.SetName("root")
	sub := NewGroup()
	sub.SetName("sub")
	root.AddChild(sub)
	leaf := namedRect("leaf", 5, 5)
	sub.AddChild(leaf)
	other := namedRect("other", 5, 5)
	root.AddChild(other)

	var visited []string
	root.WalkDown(func(n Node) bool {
		visited = append(visited, n.AsNodeBase().Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "sub", "leaf", "other"}, visited)

	// pruning a subtree skips its children but not its siblings
	visited = visited[:0]
	root.WalkDown(func(n Node) bool {
		visited = append(visited, n.AsNodeBase().Name)
		return n.AsNodeBase().Name != "sub"
	})
	assert.Equal(t, []string{"root", "sub", "other"}, visited)

	assert.Same(t, leaf, root.FindName("leaf"))
	assert.Nil(t, root.FindName("missing"))
}

func TestCloneGroup(t *testing.T) {
	g := NewGroup()
	g.SetName("orig")
	g.SetPos(5, 6)
	r := namedRect("kid", 10, 10)
	r.SetPos(1, 2)
	g.AddChild(r)

	cn := Clone(g)
	cg, ok := cn.(*Group)
	require.True(t, ok)

	assert.Equal(t, "orig", cg.Name)
	assert.Equal(t, math32.Vec2(5, 6), cg.Pos())
	assert.Nil(t, cg.Parent)
	require.Equal(t, 1, cg.NumChildren())

	ck := cg.Child(0).AsNodeBase()
	assert.Equal(t, "kid", ck.Name)
	assert.Equal(t, math32.Vec2(1, 2), ck.Pos())

	// the clone is independent of the original
	r.SetPos(50, 50)
	assert.Equal(t, math32.Vec2(1, 2), ck.Pos())
}

func TestDestroyGroup(t *testing.T) {
	g := NewGroup()
	r := NewRect(10, 10)
	g.AddChild(r)
	g.SetCacheRendering(true)
	sf := paint.NewImageSurface(16, 16)
	g.Draw(sf)

	g.Destroy()
	assert.Nil(t, g.Children)
	assert.Nil(t, g.cache)
	assert.Nil(t, r.Parent)
}
