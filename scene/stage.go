// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"github.com/guinetik/gcanvas-sub007/paint"
)

// Stage is the root of a scene graph. It owns the root group and
// drives the per-frame update and draw passes. The host loop calls
// [Stage.Update] once per tick and [Stage.Draw] once per frame, both
// on the same goroutine.
type Stage struct {

	// Root is the root group all scene content hangs off of.
	Root *Group

	// Background, if non-nil, clears the surface to this color before
	// drawing. Nil leaves the surface as is.
	Background color.Color
}

// NewStage returns a stage with an empty root group named "root".
func NewStage() *Stage {
	st := &Stage{Root: NewGroup()}
	st.Root.SetName("root")
	return st
}

// Update advances the whole graph by dt seconds.
func (st *Stage) Update(dt float32) {
	st.Root.Update(dt)
}

// Draw clears the surface to the background color, if any, and draws
// the graph.
func (st *Stage) Draw(sf paint.Surface) {
	if st.Background != nil {
		sf.Clear(st.Background)
	}
	sf.Save()
	st.Root.Draw(sf)
	sf.Restore()
}

// Destroy destroys the whole graph.
func (st *Stage) Destroy() {
	if st.Root != nil {
		st.Root.Destroy()
		st.Root = nil
	}
}
