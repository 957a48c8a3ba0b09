// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
	"github.com/guinetik/gcanvas-sub007/scene"
)

const (
	// backfaceEps is the average face normal Z above which a face
	// points away from the viewer and is culled. Slightly positive so
	// silhouette faces with near-zero normals still draw.
	backfaceEps = 0.01

	// radiusRegenThreshold is how far the radius must move from the
	// last generated geometry before the mesh is rebuilt. Changes
	// below it are sub-pixel and keep the existing mesh.
	radiusRegenThreshold = 0.25
)

// Vertex is a mesh vertex: a position on the solid and its unit
// surface normal.
type Vertex struct {
	Pos    math32.Vector3
	Normal math32.Vector3
}

// Face is a triangle over the vertex list, wound counter clockwise
// seen from outside.
type Face struct {
	A, B, C int
}

// visFace is a face that survived culling, with its draw depth and
// lighting, ready for the painter sort.
type visFace struct {
	face      int
	depth     float32
	intensity float32
}

// Sphere is a scene node rendering a UV sphere through a [Camera].
// The mesh is latSegs bands of lonSegs quads, two triangles each,
// with the pole bands collapsing to single triangles. Vertex normals
// point out of the sphere center.
//
// The sphere draws centered on its content box, so with the default
// centered origin its position is the sphere center. Bounds are the
// 2D content box like any other node; perspective bulge is not
// accounted for.
type Sphere struct {
	scene.NodeBase

	// Cam projects and culls the mesh. Nothing draws while it is nil.
	Cam *Camera

	// Material selects fill against wireframe, the base color, and an
	// optional gradient source.
	Material Material

	// LightDir is the unit light direction used by the lighting
	// model. Use [Sphere.SetLightDir] to set it from an arbitrary
	// vector.
	LightDir math32.Vector3

	radius    float32
	genRadius float32
	latSegs   int
	lonSegs   int

	verts []Vertex
	faces []Face

	// per-frame scratch, reused across draws
	proj    []Projection
	rotN    []math32.Vector3
	vis     []visFace
	fillSrc *image.Uniform
}

var _ scene.Node = (*Sphere)(nil)

// NewSphere returns a sphere of the given radius and tessellation,
// projected through the given camera. The origin defaults to the
// center, so the position is the sphere center.
func NewSphere(cam *Camera, radius float32, latSegs, lonSegs int) *Sphere {
	sp := &Sphere{Cam: cam}
	scene.InitNode(sp)
	sp.SetOrigin(0.5, 0.5)
	sp.Material = Material{
		Color:       color.RGBA{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1,
	}
	sp.LightDir = DefaultLightDir
	sp.fillSrc = image.NewUniform(color.RGBA{})
	sp.latSegs, sp.lonSegs = latSegs, lonSegs
	sp.setRadiusSize(radius)
	sp.regenerate()
	return sp
}

// Radius returns the sphere radius.
func (sp *Sphere) Radius() float32 { return sp.radius }

// SetRadius sets the sphere radius. Negative values clamp to zero.
// The mesh is rebuilt only when the radius moved more than
// radiusRegenThreshold from the last build; smaller changes are
// sub-pixel and keep the current mesh.
func (sp *Sphere) SetRadius(r float32) *Sphere {
	checkFinite(sp.Name, "radius", r)
	sp.setRadiusSize(r)
	if math32.Abs(sp.radius-sp.genRadius) > radiusRegenThreshold {
		sp.regenerate()
	}
	return sp
}

func (sp *Sphere) setRadiusSize(r float32) {
	sp.radius = math32.Max(r, 0)
	sp.SetSize(2*sp.radius, 2*sp.radius)
}

// Segments returns the latitude and longitude segment counts.
func (sp *Sphere) Segments() (lat, lon int) { return sp.latSegs, sp.lonSegs }

// SetSegments sets the tessellation and rebuilds the mesh. Fewer than
// 2 latitude or 3 longitude segments produce an empty mesh.
func (sp *Sphere) SetSegments(lat, lon int) *Sphere {
	sp.latSegs, sp.lonSegs = lat, lon
	sp.regenerate()
	return sp
}

// SetLightDir sets the light direction, normalizing it. A zero vector
// is ignored.
func (sp *Sphere) SetLightDir(v math32.Vector3) *Sphere {
	if v.Length() == 0 {
		return sp
	}
	sp.LightDir = v.Normal()
	return sp
}

// NumFaces returns the number of triangles in the mesh.
func (sp *Sphere) NumFaces() int { return len(sp.faces) }

// regenerate rebuilds the vertex and face lists for the current
// radius and tessellation. A zero radius or a degenerate tessellation
// leaves the mesh empty.
func (sp *Sphere) regenerate() {
	sp.genRadius = sp.radius
	sp.verts = sp.verts[:0]
	sp.faces = sp.faces[:0]
	if sp.radius <= 0 || sp.latSegs < 2 || sp.lonSegs < 3 {
		return
	}
	for lat := 0; lat <= sp.latSegs; lat++ {
		v := float32(lat) / float32(sp.latSegs)
		sinV, cosV := math32.Sincos(v * math32.Pi)
		for lon := 0; lon <= sp.lonSegs; lon++ {
			u := float32(lon) / float32(sp.lonSegs)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)
			pos := math32.Vec3(-sp.radius*cosU*sinV, sp.radius*cosV, sp.radius*sinU*sinV)
			sp.verts = append(sp.verts, Vertex{Pos: pos, Normal: pos.Normal()})
		}
	}
	stride := sp.lonSegs + 1
	for lat := 0; lat < sp.latSegs; lat++ {
		for lon := 0; lon < sp.lonSegs; lon++ {
			v1 := lat*stride + lon + 1
			v2 := lat*stride + lon
			v3 := (lat+1)*stride + lon
			v4 := (lat+1)*stride + lon + 1
			if lat != 0 {
				sp.faces = append(sp.faces, Face{v1, v2, v4})
			}
			if lat != sp.latSegs-1 {
				sp.faces = append(sp.faces, Face{v2, v3, v4})
			}
		}
	}
}

// Draw runs the software pipeline: project all vertices, drop faces
// reaching behind the camera, cull faces pointing away, light the
// rest, painter sort far to near, and fill or stroke each triangle.
func (sp *Sphere) Draw(sf paint.Surface) {
	if !sp.Visible || sp.Cam == nil || len(sp.faces) == 0 {
		return
	}
	sp.ApplyTransform(sf)
	sz := sp.Size()
	sf.Translate(sz.X/2, sz.Y/2)

	cam := sp.Cam
	sp.proj = sp.proj[:0]
	sp.rotN = sp.rotN[:0]
	for _, vt := range sp.verts {
		sp.proj = append(sp.proj, cam.Project(vt.Pos))
		sp.rotN = append(sp.rotN, cam.RotateVec(vt.Normal))
	}

	sp.vis = sp.vis[:0]
	for fi, f := range sp.faces {
		pa, pb, pc := sp.proj[f.A], sp.proj[f.B], sp.proj[f.C]
		if cam.Behind(pa.Z) || cam.Behind(pb.Z) || cam.Behind(pc.Z) {
			continue
		}
		n := sp.rotN[f.A].Add(sp.rotN[f.B]).Add(sp.rotN[f.C]).MulScalar(1.0 / 3)
		if n.Z > backfaceEps {
			continue
		}
		sp.vis = append(sp.vis, visFace{
			face:      fi,
			depth:     (pa.Z + pb.Z + pc.Z) / 3,
			intensity: Lambert(n.Normal(), sp.LightDir),
		})
	}

	// painter sort: farthest faces first, so nearer ones paint over
	slices.SortStableFunc(sp.vis, func(a, b visFace) int {
		return cmp.Compare(b.depth, a.depth)
	})

	var tri [3]math32.Vector2
	for _, vf := range sp.vis {
		f := sp.faces[vf.face]
		tri[0] = math32.Vec2(sp.proj[f.A].X, sp.proj[f.A].Y)
		tri[1] = math32.Vec2(sp.proj[f.B].X, sp.proj[f.B].Y)
		tri[2] = math32.Vec2(sp.proj[f.C].X, sp.proj[f.C].Y)
		src := sp.Material.Fill
		if src == nil {
			sp.fillSrc.C = Shade(sp.Material.Color, vf.intensity)
			src = sp.fillSrc
		}
		if sp.Material.Wireframe {
			sf.StrokePolygon(tri[:], src, sp.Material.StrokeWidth)
		} else {
			sf.FillPolygon(tri[:], src)
		}
	}
}

// CopyFieldsFrom copies the sphere's settings and rebuilds the mesh.
// The camera is shared with the source, not cloned.
func (sp *Sphere) CopyFieldsFrom(from scene.Node) {
	sp.NodeBase.CopyFieldsFrom(from)
	fs, ok := from.(*Sphere)
	if !ok {
		return
	}
	sp.Cam = fs.Cam
	sp.Material = fs.Material
	sp.LightDir = fs.LightDir
	if sp.fillSrc == nil {
		sp.fillSrc = image.NewUniform(color.RGBA{})
	}
	sp.radius = fs.radius
	sp.latSegs, sp.lonSegs = fs.latSegs, fs.lonSegs
	sp.regenerate()
}

// checkFinite panics with a [*scene.InvalidPropertyError] if any
// value is NaN or infinite, before anything is mutated.
func checkFinite(node, prop string, vals ...float32) {
	for _, v := range vals {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			panic(&scene.InvalidPropertyError{Node: node, Property: prop, Value: v})
		}
	}
}
