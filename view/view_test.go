package view_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/chainviz/chain"
	"go.viam.com/chainviz/testutils/inject"
	"go.viam.com/chainviz/view"
)

func threeJointChain(t *testing.T) *chain.Chain {
	t.Helper()
	c, err := chain.New(3, 2)
	test.That(t, err, test.ShouldBeNil)
	_, err = c.SetJoint(1, r3.Vector{X: 1})
	test.That(t, err, test.ShouldBeNil)
	_, err = c.SetJoint(2, r3.Vector{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	return c
}

func TestProject(t *testing.T) {
	c := threeJointChain(t)
	before := c.Clone()

	g := view.Project(c)
	test.That(t, g.Polyline, test.ShouldResemble, []r3.Vector{{}, {X: 1}, {X: 1, Y: 1}})
	test.That(t, g.BasePoint, test.ShouldResemble, r3.Vector{})
	test.That(t, g.EndEffector.From, test.ShouldResemble, r3.Vector{X: 1, Y: 1})
	test.That(t, g.EndEffector.To, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0.5})

	// Projection never touches the chain, and the polyline is not aliased to it.
	g.Polyline[1] = r3.Vector{X: 42}
	test.That(t, c, test.ShouldResemble, before)
}

func TestProjectPlaceholders(t *testing.T) {
	c, err := chain.New(4, 1)
	test.That(t, err, test.ShouldBeNil)

	g := view.Project(c)
	test.That(t, len(g.Polyline), test.ShouldEqual, 4)
	for _, p := range g.Polyline {
		test.That(t, p, test.ShouldResemble, r3.Vector{})
	}
	test.That(t, g.EndEffector.To, test.ShouldResemble, r3.Vector{Z: view.EndEffectorHeight})

	// An over-length link is still drawn where the joint was put.
	_, err = c.SetJoint(1, r3.Vector{X: 10})
	test.That(t, err, test.ShouldBeNil)
	g = view.Project(c)
	test.That(t, g.Polyline[1], test.ShouldResemble, r3.Vector{X: 10})
}

func TestBounds(t *testing.T) {
	lo, hi := view.Bounds(view.Project(threeJointChain(t)))
	test.That(t, lo, test.ShouldResemble, r3.Vector{})
	test.That(t, hi, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0.5})
}

func TestDraw(t *testing.T) {
	r := &inject.Renderer{}
	err := view.Draw(r, view.Project(threeJointChain(t)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r.Methods(), test.ShouldResemble, []string{"Clear", "SetTitle", "Polyline", "Point", "Segment"})
	test.That(t, r.Flushes, test.ShouldEqual, 1)

	title, err := r.Find("SetTitle")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, title.Text, test.ShouldResemble, []string{"Robotics Model (3D)", "X", "Y", "Z"})

	line, err := r.Find("Polyline")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(line.Points), test.ShouldEqual, 3)
	test.That(t, line.Style, test.ShouldResemble, view.StyleChain)

	base, err := r.Find("Point")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, base.Style.Label, test.ShouldEqual, "Base Joint")

	ee, err := r.Find("Segment")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ee.Style.Label, test.ShouldEqual, "End-Effector")
	test.That(t, ee.Points[1], test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0.5})

	// Drawing again replaces the previous frame.
	test.That(t, view.Draw(r, view.Project(threeJointChain(t))), test.ShouldBeNil)
	test.That(t, len(r.Calls), test.ShouldEqual, 5)
}

func TestDrawErrors(t *testing.T) {
	r := &inject.Renderer{FlushFunc: func() error { return errors.New("disk full") }}
	err := view.Draw(r, view.Project(threeJointChain(t)))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "disk full")

	err = view.Draw(r, view.RenderGeometry{})
	test.That(t, err, test.ShouldNotBeNil)
}
