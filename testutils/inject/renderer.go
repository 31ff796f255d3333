// Package inject provides injectable and recording fakes of chainviz collaborators for tests.
package inject

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/chainviz/view"
)

// Call is one recorded renderer call.
type Call struct {
	Method string
	Points []r3.Vector
	Style  view.Style
	Text   []string
}

// Renderer is an injected renderer. Every call is recorded; Flush calls FlushFunc if set.
type Renderer struct {
	Calls     []Call
	Flushes   int
	FlushFunc func() error
}

// Clear records the call and forgets everything drawn so far.
func (r *Renderer) Clear() {
	r.Calls = append(r.Calls[:0], Call{Method: "Clear"})
}

// SetTitle records the call.
func (r *Renderer) SetTitle(title, xLabel, yLabel, zLabel string) {
	r.Calls = append(r.Calls, Call{Method: "SetTitle", Text: []string{title, xLabel, yLabel, zLabel}})
}

// Polyline records the call.
func (r *Renderer) Polyline(pts []r3.Vector, style view.Style) {
	cp := make([]r3.Vector, len(pts))
	copy(cp, pts)
	r.Calls = append(r.Calls, Call{Method: "Polyline", Points: cp, Style: style})
}

// Point records the call.
func (r *Renderer) Point(p r3.Vector, style view.Style) {
	r.Calls = append(r.Calls, Call{Method: "Point", Points: []r3.Vector{p}, Style: style})
}

// Segment records the call.
func (r *Renderer) Segment(s view.Segment, style view.Style) {
	r.Calls = append(r.Calls, Call{Method: "Segment", Points: []r3.Vector{s.From, s.To}, Style: style})
}

// Flush calls the injected Flush or succeeds.
func (r *Renderer) Flush() error {
	r.Flushes++
	if r.FlushFunc == nil {
		return nil
	}
	return r.FlushFunc()
}

// Methods returns the recorded method names in order.
func (r *Renderer) Methods() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Method)
	}
	return out
}

// Find returns the first recorded call to method.
func (r *Renderer) Find(method string) (Call, error) {
	for _, c := range r.Calls {
		if c.Method == method {
			return c, nil
		}
	}
	return Call{}, errors.Errorf("no %s call recorded", method)
}
