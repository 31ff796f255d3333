package session

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/chainviz/chain"
	"go.viam.com/chainviz/logging"
	"go.viam.com/chainviz/testutils/inject"
)

func newTestSession(t *testing.T) (*Session, *inject.Renderer, *inject.MessageDisplayer) {
	t.Helper()
	r := &inject.Renderer{}
	msgs := &inject.MessageDisplayer{}
	return New(logging.NewTestLogger(t), r, msgs), r, msgs
}

func TestSubmit(t *testing.T) {
	s, r, msgs := newTestSession(t)
	test.That(t, s.State(), test.ShouldEqual, Uninitialized)
	test.That(t, s.Chain(), test.ShouldBeNil)
	_, ok := s.Geometry()
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, s.Submit(" 3 ", "5"), test.ShouldBeNil)
	test.That(t, s.State(), test.ShouldEqual, AwaitingJointInput)
	test.That(t, s.Chain().NumJoints(), test.ShouldEqual, 3)
	test.That(t, s.Chain().MaxLength(), test.ShouldEqual, 5.0)
	test.That(t, r.Flushes, test.ShouldEqual, 1)
	test.That(t, len(msgs.Shown), test.ShouldEqual, 0)

	g, ok := s.Geometry()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(g.Polyline), test.ShouldEqual, 3)
}

func TestSubmitRejected(t *testing.T) {
	s, r, msgs := newTestSession(t)
	test.That(t, s.Submit("3", "5"), test.ShouldBeNil)
	_, ok := s.EditJoint(1, "1", "0", "0")
	test.That(t, ok, test.ShouldBeTrue)
	before := s.Chain()
	flushes := r.Flushes

	for _, tc := range []struct {
		joints, maxLength, message string
	}{
		{"1", "5", "Number of joints must be at least 2"},
		{"-1", "5", "Number of joints must be at least 2"},
		{"4", "0", "Max. length must be greater than 0"},
		{"4", "-5", "Max. length must be greater than 0"},
		{"four", "5", "invalid number of joints"},
		{"4", "", "invalid max. link length"},
		{"4611686018427387904", "1", "Number of joints must be at most 10000"},
	} {
		err := s.Submit(tc.joints, tc.maxLength)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, tc.message)

		last := msgs.Shown[len(msgs.Shown)-1]
		test.That(t, last.Title, test.ShouldEqual, ErrorTitle)
		test.That(t, last.Text, test.ShouldContainSubstring, tc.message)

		// The previous chain survives untouched.
		test.That(t, s.Chain(), test.ShouldResemble, before)
	}
	test.That(t, len(msgs.Shown), test.ShouldEqual, 7)
	test.That(t, r.Flushes, test.ShouldEqual, flushes)

	err := s.Submit("0", "1")
	test.That(t, chain.IsValidationError(err), test.ShouldBeTrue)
}

func TestEditJoint(t *testing.T) {
	s, r, _ := newTestSession(t)

	// Nothing to edit yet.
	_, ok := s.EditJoint(1, "3", "4", "0")
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, r.Flushes, test.ShouldEqual, 0)

	test.That(t, s.Submit("3", "4"), test.ShouldBeNil)
	res, ok := s.EditJoint(1, "3", "4", "0")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, res.Valid, test.ShouldBeFalse)
	test.That(t, res.Display, test.ShouldEqual, chain.ExceedsMaxLength)
	test.That(t, s.Chain().Joint(1), test.ShouldResemble, r3.Vector{X: 3, Y: 4})
	test.That(t, r.Flushes, test.ShouldEqual, 2)

	line, err := r.Find("Polyline")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.Points[1], test.ShouldResemble, r3.Vector{X: 3, Y: 4})

	res, ok = s.EditJoint(2, "3", "4", "4")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, res.Display, test.ShouldEqual, "4.00")
}

func TestEditJointIgnored(t *testing.T) {
	s, r, msgs := newTestSession(t)
	test.That(t, s.Submit("3", "10"), test.ShouldBeNil)
	_, ok := s.EditJoint(1, "1", "2", "2")
	test.That(t, ok, test.ShouldBeTrue)
	before := s.Chain()
	flushes := r.Flushes

	for _, fields := range [][3]string{
		{"1.", "2", "x"},
		{"", "", ""},
		{"-", "0", "0"},
	} {
		_, ok := s.EditJoint(1, fields[0], fields[1], fields[2])
		test.That(t, ok, test.ShouldBeFalse)
	}
	_, ok = s.EditJoint(3, "1", "1", "1")
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, s.Chain(), test.ShouldResemble, before)
	test.That(t, r.Flushes, test.ShouldEqual, flushes)
	test.That(t, len(msgs.Shown), test.ShouldEqual, 0)
}

func TestResubmitDiscardsJoints(t *testing.T) {
	s, _, _ := newTestSession(t)
	test.That(t, s.Submit("3", "1"), test.ShouldBeNil)
	_, ok := s.EditJoint(1, "5", "0", "0")
	test.That(t, ok, test.ShouldBeTrue)
	_, ok = s.EditJoint(2, "5", "0.5", "0")
	test.That(t, ok, test.ShouldBeTrue)

	test.That(t, s.Submit("3", "1"), test.ShouldBeNil)
	c := s.Chain()
	test.That(t, c.Joints(), test.ShouldResemble, []chain.Joint{{}, {}, {}})
	for _, l := range c.Links() {
		test.That(t, l.State, test.ShouldEqual, chain.LinkUnset)
	}
}

func TestLogging(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	r := &inject.Renderer{FlushFunc: func() error { return errors.New("no display") }}
	s := New(logger, r, nil)

	test.That(t, s.Submit("2", "1"), test.ShouldBeNil)
	test.That(t, observed.FilterMessage("created chain").Len(), test.ShouldEqual, 1)
	test.That(t, observed.FilterMessage("failed to draw chain").Len(), test.ShouldEqual, 1)

	_, ok := s.EditJoint(1, "2", "0", "0")
	test.That(t, ok, test.ShouldBeTrue)
	warned := observed.FilterMessage("link exceeds max length").All()
	test.That(t, len(warned), test.ShouldEqual, 1)
	test.That(t, warned[0].ContextMap()["length"], test.ShouldEqual, 2.0)

	// Without a message displayer a rejected submission is still reported.
	test.That(t, s.Submit("1", "1"), test.ShouldNotBeNil)
}

func TestStateString(t *testing.T) {
	test.That(t, Uninitialized.String(), test.ShouldEqual, "uninitialized")
	test.That(t, AwaitingJointInput.String(), test.ShouldEqual, "awaiting joint input")
}

func TestSetJoint(t *testing.T) {
	s, r, _ := newTestSession(t)
	_, err := s.SetJoint(1, r3.Vector{X: 1})
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, s.Submit("2", "2"), test.ShouldBeNil)
	res, err := s.SetJoint(1, r3.Vector{Z: 1.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Display, test.ShouldEqual, "1.50")
	test.That(t, r.Flushes, test.ShouldEqual, 2)

	_, err = s.SetJoint(2, r3.Vector{})
	var idxErr *chain.IndexError
	test.That(t, errors.As(err, &idxErr), test.ShouldBeTrue)
	test.That(t, r.Flushes, test.ShouldEqual, 2)
}

func TestSubmitShowsErrorOnce(t *testing.T) {
	var shown []string
	msgs := &inject.MessageDisplayer{ErrorFunc: func(title, text string) {
		shown = append(shown, title+": "+text)
	}}
	s := New(logging.NewTestLogger(t), nil, msgs)

	test.That(t, s.Submit("2", "-1"), test.ShouldNotBeNil)
	test.That(t, shown, test.ShouldResemble, []string{"Error: Max. length must be greater than 0"})

	// Successful submissions and ignored joint edits show nothing.
	test.That(t, s.Submit("2", "1"), test.ShouldBeNil)
	_, ok := s.EditJoint(1, "x", "0", "0")
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, len(shown), test.ShouldEqual, 1)
	test.That(t, len(msgs.Shown), test.ShouldEqual, 1)
}
