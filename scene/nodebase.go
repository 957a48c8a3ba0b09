// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
	"github.com/jinzhu/copier"
)

// NodeBase is the base type for all scene graph nodes. It carries the
// spatial state (position, size, origin, rotation, scale) and the
// cached bounding box derived from it.
//
// The transform fields are unexported on purpose: every setter
// validates its input and marks the bounds cache of this node and its
// ancestors dirty, which direct field writes would silently skip.
// Setters return the NodeBase so calls can be chained.
type NodeBase struct {

	// Name is the user settable name of this node, used for paths
	// and lookup. It is not required to be unique.
	Name string

	// This is the node as its true underlying type. It is set by
	// [InitNode] and by [Group.AddChild], and enables NodeBase code
	// to call methods overridden by the concrete type.
	This Node `copier:"-"`

	// Parent is the group this node is a child of, or nil at the
	// root. It is maintained by [Group.AddChild] and friends; nodes
	// never own their parent.
	Parent Node `copier:"-"`

	// Visible determines whether this node (and, for groups, its
	// subtree) is drawn. Invisible nodes still occupy their place in
	// the sibling order and still contribute to group bounds.
	Visible bool

	// Active determines whether Update is forwarded to this node.
	Active bool

	pos    math32.Vector2
	size   math32.Vector2
	origin math32.Vector2
	rot    float32 // radians
	scale  math32.Vector2
	zIndex int

	// order is the insertion sequence number assigned by the parent
	// group, used to break zIndex ties stably.
	order int64

	bounds      math32.Box2
	boundsDirty bool
}

func (nb *NodeBase) init(this Node) {
	nb.This = this
	nb.scale = math32.Vec2(1, 1)
	nb.Visible = true
	nb.Active = true
	nb.boundsDirty = true
}

// AsNodeBase returns the [NodeBase] of this node.
func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// Update implements [Node] and does nothing.
func (nb *NodeBase) Update(dt float32) {}

// Draw implements [Node] and draws nothing.
func (nb *NodeBase) Draw(sf paint.Surface) {}

// Destroy implements [Node]. It detaches the node from its parent
// link; it does not remove it from the parent's child list (use
// [Group.RemoveChild] for that).
func (nb *NodeBase) Destroy() {
	nb.Parent = nil
	nb.This = nil
}

// checkFinite panics with an [*InvalidPropertyError] if any value is
// NaN or infinite. It runs before any mutation so a rejected call
// leaves the node and its caches untouched.
func (nb *NodeBase) checkFinite(prop string, vals ...float32) {
	for _, v := range vals {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			panic(&InvalidPropertyError{Node: nb.Name, Property: prop, Value: v})
		}
	}
}

// markBoundsDirty invalidates the cached bounds of this node and all
// of its ancestors. It stops at the first ancestor already marked:
// a dirty node implies a dirty chain above it.
func (nb *NodeBase) markBoundsDirty() {
	nb.boundsDirty = true
	for p := nb.Parent; p != nil; {
		pb := p.AsNodeBase()
		if pb.boundsDirty {
			break
		}
		pb.boundsDirty = true
		p = pb.Parent
	}
}

// SetName sets the node's name and returns the node for chaining.
func (nb *NodeBase) SetName(name string) *NodeBase {
	nb.Name = name
	return nb
}

// SetVisible sets whether the node is drawn.
func (nb *NodeBase) SetVisible(v bool) *NodeBase {
	nb.Visible = v
	return nb
}

// SetActive sets whether the node receives Update calls.
func (nb *NodeBase) SetActive(a bool) *NodeBase {
	nb.Active = a
	return nb
}

// Pos returns the node's position in its parent's coordinate space.
func (nb *NodeBase) Pos() math32.Vector2 { return nb.pos }

// SetPos sets the node's position. Panics with
// [*InvalidPropertyError] on NaN or infinite input.
func (nb *NodeBase) SetPos(x, y float32) *NodeBase {
	nb.checkFinite("position", x, y)
	nb.pos.Set(x, y)
	nb.markBoundsDirty()
	return nb
}

// TranslateBy moves the node by the given delta.
func (nb *NodeBase) TranslateBy(dx, dy float32) *NodeBase {
	nb.checkFinite("position", dx, dy)
	nb.pos.SetAdd(math32.Vec2(dx, dy))
	nb.markBoundsDirty()
	return nb
}

// Size returns the node's local content size.
func (nb *NodeBase) Size() math32.Vector2 { return nb.size }

// SetSize sets the node's local content size. Negative dimensions are
// silently clamped to zero.
func (nb *NodeBase) SetSize(w, h float32) *NodeBase {
	nb.checkFinite("size", w, h)
	nb.size.Set(math32.Max(w, 0), math32.Max(h, 0))
	nb.markBoundsDirty()
	return nb
}

// Origin returns the node's anchor point in normalized local
// coordinates, where (0,0) is the top left of the content box and
// (1,1) the bottom right.
func (nb *NodeBase) Origin() math32.Vector2 { return nb.origin }

// SetOrigin sets the node's anchor point. The position refers to this
// point, and rotation and scale pivot around it. Values are clamped
// to [0,1].
func (nb *NodeBase) SetOrigin(ox, oy float32) *NodeBase {
	nb.checkFinite("origin", ox, oy)
	nb.origin.Set(math32.Clamp01(ox), math32.Clamp01(oy))
	nb.markBoundsDirty()
	return nb
}

// Rotation returns the node's rotation in radians.
func (nb *NodeBase) Rotation() float32 { return nb.rot }

// SetRotation sets the node's rotation in radians.
func (nb *NodeBase) SetRotation(rad float32) *NodeBase {
	nb.checkFinite("rotation", rad)
	nb.rot = rad
	nb.markBoundsDirty()
	return nb
}

// RotationDegrees returns the node's rotation in degrees.
func (nb *NodeBase) RotationDegrees() float32 {
	return math32.RadToDeg(nb.rot)
}

// SetRotationDegrees sets the node's rotation in degrees.
func (nb *NodeBase) SetRotationDegrees(deg float32) *NodeBase {
	nb.checkFinite("rotation", deg)
	nb.rot = math32.DegToRad(deg)
	nb.markBoundsDirty()
	return nb
}

// RotateBy adds the given angle in degrees to the node's rotation.
func (nb *NodeBase) RotateBy(deg float32) *NodeBase {
	nb.checkFinite("rotation", deg)
	nb.rot += math32.DegToRad(deg)
	nb.markBoundsDirty()
	return nb
}

// Scale returns the node's scale factors.
func (nb *NodeBase) Scale() math32.Vector2 { return nb.scale }

// SetScale sets the node's scale factors.
func (nb *NodeBase) SetScale(sx, sy float32) *NodeBase {
	nb.checkFinite("scale", sx, sy)
	nb.scale.Set(sx, sy)
	nb.markBoundsDirty()
	return nb
}

// ScaleBy multiplies the node's scale factors by the given factors.
func (nb *NodeBase) ScaleBy(sx, sy float32) *NodeBase {
	nb.checkFinite("scale", sx, sy)
	nb.scale.SetMul(math32.Vec2(sx, sy))
	nb.markBoundsDirty()
	return nb
}

// ZIndex returns the node's draw-order key within its parent.
func (nb *NodeBase) ZIndex() int { return nb.zIndex }

// SetZIndex sets the node's draw-order key. Children of a group draw
// in ascending zIndex order, insertion order breaking ties.
//
// SetZIndex deliberately does not invalidate the parent's sorted
// order: code that animates zIndex every frame calls
// [Group.ForceResort] once after the batch of writes instead of
// paying a resort per write.
func (nb *NodeBase) SetZIndex(z int) *NodeBase {
	nb.zIndex = z
	return nb
}

// Pivot returns the anchor point in local content coordinates,
// origin * size.
func (nb *NodeBase) Pivot() math32.Vector2 {
	return nb.origin.Mul(nb.size)
}

// LocalMatrix returns the node's transform as a matrix mapping local
// content coordinates to the parent's space: translate to position,
// rotate, scale, all pivoting on the origin anchor.
func (nb *NodeBase) LocalMatrix() math32.Matrix2 {
	pv := nb.Pivot()
	return math32.Translate2D(nb.pos.X, nb.pos.Y).
		Rotate(nb.rot).
		Scale(nb.scale.X, nb.scale.Y).
		Translate(-pv.X, -pv.Y)
}

// ApplyTransform applies the node's transform to the surface, in the
// same order as [NodeBase.LocalMatrix].
func (nb *NodeBase) ApplyTransform(sf paint.Surface) {
	pv := nb.Pivot()
	sf.Translate(nb.pos.X, nb.pos.Y)
	sf.Rotate(nb.rot)
	sf.Scale(nb.scale.X, nb.scale.Y)
	sf.Translate(-pv.X, -pv.Y)
}

// contentBox returns the node's untransformed content box in local
// coordinates. For a plain spatial node this is the size box anchored
// at the local origin.
func (nb *NodeBase) contentBox() math32.Box2 {
	return math32.B2(0, 0, nb.size.X, nb.size.Y)
}

// computeBounds transforms the given local content box to the
// parent's space by mapping its four corners and taking their
// min and max.
func (nb *NodeBase) computeBounds(content math32.Box2) math32.Box2 {
	if content.IsEmpty() {
		return content
	}
	return content.MulMatrix2(nb.LocalMatrix())
}

// Bounds returns the node's axis-aligned bounding box in its parent's
// coordinate space. The box is cached; it is recomputed only if a
// transform field changed since the last call.
func (nb *NodeBase) Bounds() math32.Box2 {
	if !nb.boundsDirty {
		return nb.bounds
	}
	nb.bounds = nb.computeBounds(nb.contentBox())
	nb.boundsDirty = false
	return nb.bounds
}

// CopyFieldsFrom copies the base spatial state from the given node
// and then uses copier for the exported fields of the concrete type.
// Parent and This links are not copied. Node types with unexported
// state of their own override this, call it, and copy their fields.
func (nb *NodeBase) CopyFieldsFrom(from Node) {
	fb := from.AsNodeBase()
	nb.Name = fb.Name
	nb.Visible = fb.Visible
	nb.Active = fb.Active
	nb.pos = fb.pos
	nb.size = fb.size
	nb.origin = fb.origin
	nb.rot = fb.rot
	nb.scale = fb.scale
	nb.zIndex = fb.zIndex
	nb.markBoundsDirty()
	if nb.This != nil && fb.This != nil {
		err := copier.CopyWithOption(nb.This, fb.This, copier.Option{CaseSensitive: true, DeepCopy: true})
		if err != nil {
			slog.Error("scene.NodeBase.CopyFieldsFrom", "err", err)
		}
	}
}

// PathName returns the slash separated path of node names from the
// root down to this node.
func (nb *NodeBase) PathName() string {
	if nb.Parent == nil {
		return nb.Name
	}
	var names []string
	for n := nb; n != nil; {
		names = append(names, n.Name)
		if n.Parent == nil {
			break
		}
		n = n.Parent.AsNodeBase()
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteString(names[i])
		if i > 0 {
			sb.WriteString("/")
		}
	}
	return sb.String()
}

// newOfSameType returns a new zero value of the same concrete type as
// the given node.
func newOfSameType(n Node) Node {
	return reflect.New(reflect.TypeOf(n).Elem()).Interface().(Node)
}
