package view

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Marker is the glyph drawn at a point.
type Marker int

// Known markers.
const (
	MarkerNone Marker = iota
	MarkerCircle
)

// Style describes how a piece of geometry is drawn. A non-empty Label adds a legend entry.
type Style struct {
	Label  string
	Color  string // hex, e.g. "#0000ff"
	Marker Marker
	Width  float64
}

// Styles used by Draw.
var (
	StyleChain       = Style{Color: "#0000ff", Marker: MarkerCircle, Width: 2}
	StyleBase        = Style{Label: "Base Joint", Color: "#ff0000", Marker: MarkerCircle, Width: 2}
	StyleEndEffector = Style{Label: "End-Effector", Color: "#008000", Marker: MarkerNone, Width: 2}
)

// Renderer is a 3D drawing surface. Implementations decide how geometry becomes pixels.
type Renderer interface {
	Clear()
	SetTitle(title, xLabel, yLabel, zLabel string)
	Polyline(pts []r3.Vector, style Style)
	Point(p r3.Vector, style Style)
	Segment(s Segment, style Style)
	// Flush presents everything drawn since the last Clear.
	Flush() error
}

// Draw replaces whatever r shows with g.
func Draw(r Renderer, g RenderGeometry) error {
	if len(g.Polyline) == 0 {
		return errors.New("cannot draw empty geometry")
	}
	r.Clear()
	r.SetTitle(Title, XLabel, YLabel, ZLabel)
	r.Polyline(g.Polyline, StyleChain)
	r.Point(g.BasePoint, StyleBase)
	r.Segment(g.EndEffector, StyleEndEffector)
	return errors.Wrap(r.Flush(), "failed to flush plot")
}
