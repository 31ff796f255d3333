// Package ggrender draws chain geometry into a PNG using an isometric projection.
package ggrender

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/chainviz/view"
)

const (
	defaultWidth  = 500
	defaultHeight = 400
	margin        = 40.0
	markerRadius  = 4.0
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

type primitive struct {
	pts   []r3.Vector
	style view.Style
	point bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// Renderer implements view.Renderer. Geometry is buffered until Flush, which scales it to fit
// the image and writes the PNG.
type Renderer struct {
	path          string
	width, height int

	title  string
	labels [3]string
	prims  []primitive
	last   image.Image
}

var _ view.Renderer = (*Renderer)(nil)

// New returns a renderer that writes to path on every Flush. An empty path only keeps the image
// in memory.
func New(path string, opts ...Option) *Renderer {
	r := &Renderer{path: path, width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear drops all buffered geometry.
func (r *Renderer) Clear() {
	r.prims = r.prims[:0]
}

// SetTitle sets the plot title and axis labels.
func (r *Renderer) SetTitle(title, xLabel, yLabel, zLabel string) {
	r.title = title
	r.labels = [3]string{xLabel, yLabel, zLabel}
}

// Polyline buffers a connected line.
func (r *Renderer) Polyline(pts []r3.Vector, style view.Style) {
	cp := make([]r3.Vector, len(pts))
	copy(cp, pts)
	r.prims = append(r.prims, primitive{pts: cp, style: style})
}

// Point buffers a single marker.
func (r *Renderer) Point(p r3.Vector, style view.Style) {
	r.prims = append(r.prims, primitive{pts: []r3.Vector{p}, style: style, point: true})
}

// Segment buffers a single segment.
func (r *Renderer) Segment(s view.Segment, style view.Style) {
	r.prims = append(r.prims, primitive{pts: []r3.Vector{s.From, s.To}, style: style})
}

// Image returns the last flushed frame, or nil.
func (r *Renderer) Image() image.Image {
	return r.last
}

// Flush draws the buffered geometry and writes it out.
func (r *Renderer) Flush() error {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(color.White)
	dc.Clear()

	toScreen := r.fit()
	r.drawAxes(dc, toScreen)

	for _, p := range r.prims {
		c, err := colorful.Hex(p.style.Color)
		if err != nil {
			return errors.Wrapf(err, "bad color for %q", p.style.Label)
		}
		dc.SetColor(c)
		dc.SetLineWidth(math.Max(p.style.Width, 1))

		if !p.point && len(p.pts) > 1 {
			for i, pt := range p.pts {
				x, y := toScreen(pt)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
		}
		if p.point || p.style.Marker == view.MarkerCircle {
			for _, pt := range p.pts {
				x, y := toScreen(pt)
				dc.DrawCircle(x, y, markerRadius)
				dc.Fill()
			}
		}
	}

	r.drawLegend(dc)
	if r.title != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(r.title, float64(r.width)/2, margin/2, 0.5, 0.5)
	}

	r.last = dc.Image()
	if r.path == "" {
		return nil
	}
	return errors.Wrapf(dc.SavePNG(r.path), "failed to write %s", r.path)
}

// project maps a 3D point onto the isometric image plane, with v pointing up.
func project(p r3.Vector) (u, v float64) {
	return (p.X - p.Y) * cos30, p.Z - (p.X+p.Y)*sin30
}

// fit returns a function mapping 3D points into pixel coordinates. The scale comes from the
// corners of the box bounding every buffered point and the origin, so the whole box stays inside
// the margins.
func (r *Renderer) fit() func(r3.Vector) (float64, float64) {
	var pts []r3.Vector
	for _, p := range r.prims {
		pts = append(pts, p.pts...)
	}
	// The origin is the base point, which keeps the axes in frame.
	lo, hi := view.Bounds(view.RenderGeometry{Polyline: pts})

	minU, maxU := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, x := range []float64{lo.X, hi.X} {
		for _, y := range []float64{lo.Y, hi.Y} {
			for _, z := range []float64{lo.Z, hi.Z} {
				u, v := project(r3.Vector{X: x, Y: y, Z: z})
				minU, maxU = math.Min(minU, u), math.Max(maxU, u)
				minV, maxV = math.Min(minV, v), math.Max(maxV, v)
			}
		}
	}
	spanU, spanV := math.Max(maxU-minU, 1), math.Max(maxV-minV, 1)
	scale := math.Min((float64(r.width)-2*margin)/spanU, (float64(r.height)-2*margin)/spanV)
	centerU, centerV := (minU+maxU)/2, (minV+maxV)/2

	return func(pt r3.Vector) (float64, float64) {
		u, v := project(pt)
		return float64(r.width)/2 + (u-centerU)*scale, float64(r.height)/2 - (v-centerV)*scale
	}
}

func (r *Renderer) drawAxes(dc *gg.Context, toScreen func(r3.Vector) (float64, float64)) {
	ox, oy := toScreen(r3.Vector{})
	dc.SetColor(color.Gray{Y: 160})
	dc.SetLineWidth(1)
	for i, axis := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}} {
		x, y := toScreen(axis)
		dc.DrawLine(ox, oy, x, y)
		dc.Stroke()
		if r.labels[i] != "" {
			dc.DrawStringAnchored(r.labels[i], x, y, 0.5, 0.5)
		}
	}
}

func (r *Renderer) drawLegend(dc *gg.Context) {
	const lineHeight = 16.0
	y := margin
	for _, p := range r.prims {
		if p.style.Label == "" {
			continue
		}
		c, err := colorful.Hex(p.style.Color)
		if err != nil {
			continue
		}
		x := float64(r.width) - margin - 100
		dc.SetColor(c)
		dc.SetLineWidth(2)
		dc.DrawLine(x, y, x+20, y)
		dc.Stroke()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(p.style.Label, x+26, y, 0, 0.35)
		y += lineHeight
	}
}
