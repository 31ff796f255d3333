// Package view projects a chain into the geometry a 3D plot needs: the polyline through every
// joint, the base joint marker and the end-effector marker.
package view

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/chainviz/chain"
)

// EndEffectorHeight is how far the end-effector marker extends along +z from the last joint.
const EndEffectorHeight = 0.5

// Plot labels.
const (
	Title = "Robotics Model (3D)"

	XLabel = "X"
	YLabel = "Y"
	ZLabel = "Z"
)

// Segment is a straight segment between two points.
type Segment struct {
	From r3.Vector
	To   r3.Vector
}

// RenderGeometry is everything drawn for one state of a chain.
type RenderGeometry struct {
	// Polyline holds every joint in index order.
	Polyline []r3.Vector
	// BasePoint is joint 0.
	BasePoint r3.Vector
	// EndEffector is a fixed visual cue at the free end of the chain, not a link.
	EndEffector Segment
}

// Project returns the geometry of c. Placeholder joints are drawn where they are, at the origin.
func Project(c *chain.Chain) RenderGeometry {
	joints := c.Joints()
	last := joints[len(joints)-1]
	return RenderGeometry{
		Polyline:  joints,
		BasePoint: joints[0],
		EndEffector: Segment{
			From: last,
			To:   last.Add(r3.Vector{Z: EndEffectorHeight}),
		},
	}
}

// Bounds returns the axis aligned box containing all of g.
func Bounds(g RenderGeometry) (lo, hi r3.Vector) {
	inf := math.Inf(1)
	lo = r3.Vector{X: inf, Y: inf, Z: inf}
	hi = r3.Vector{X: -inf, Y: -inf, Z: -inf}
	grow := func(p r3.Vector) {
		lo = r3.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	for _, p := range g.Polyline {
		grow(p)
	}
	grow(g.BasePoint)
	grow(g.EndEffector.From)
	grow(g.EndEffector.To)
	return lo, hi
}
