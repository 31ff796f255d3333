// Package session hosts a single editable chain behind text field input, the way a form based
// front end drives it: one submit of the joint count and max length, then one edit per joint.
package session

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/chainviz/chain"
	"go.viam.com/chainviz/logging"
	"go.viam.com/chainviz/view"
)

// ErrorTitle is the title of every message shown for a rejected submission.
const ErrorTitle = "Error"

// State is where a session is in its lifecycle.
type State int

const (
	// Uninitialized means no chain has been created yet.
	Uninitialized State = iota
	// AwaitingJointInput means a chain exists and joints may be edited.
	AwaitingJointInput
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AwaitingJointInput:
		return "awaiting joint input"
	default:
		return "unknown"
	}
}

// MessageDisplayer shows an error message to the user.
type MessageDisplayer interface {
	ShowError(title, text string)
}

// Session owns the current chain. It is not safe for concurrent use.
type Session struct {
	logger   logging.Logger
	renderer view.Renderer
	messages MessageDisplayer

	chain *chain.Chain
}

// New returns an uninitialized session. renderer and messages may be nil.
func New(logger logging.Logger, renderer view.Renderer, messages MessageDisplayer) *Session {
	return &Session{logger: logger, renderer: renderer, messages: messages}
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	if s.chain == nil {
		return Uninitialized
	}
	return AwaitingJointInput
}

// Chain returns a copy of the current chain, or nil before the first successful Submit.
func (s *Session) Chain() *chain.Chain {
	if s.chain == nil {
		return nil
	}
	return s.chain.Clone()
}

// Geometry returns the projection of the current chain.
func (s *Session) Geometry() (view.RenderGeometry, bool) {
	if s.chain == nil {
		return view.RenderGeometry{}, false
	}
	return view.Project(s.chain), true
}

// Submit creates a fresh chain from the joint count and max length fields, replacing any
// existing chain. On failure the message is shown, the current chain is kept and the error is
// returned.
func (s *Session) Submit(numJoints, maxLength string) error {
	c, err := parseAndCreate(numJoints, maxLength)
	if err != nil {
		s.logger.Debugw("rejected chain submission", "joints", numJoints, "max_length", maxLength, "error", err)
		if s.messages != nil {
			s.messages.ShowError(ErrorTitle, err.Error())
		}
		return err
	}

	s.chain = c
	s.logger.Infow("created chain", "joints", c.NumJoints(), "max_length", c.MaxLength())
	s.redraw()
	return nil
}

func parseAndCreate(numJoints, maxLength string) (*chain.Chain, error) {
	n, err := strconv.Atoi(strings.TrimSpace(numJoints))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number of joints %q", numJoints)
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(maxLength), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid max. link length %q", maxLength)
	}
	return chain.New(n, l)
}

// EditJoint sets joint index from its coordinate fields. Edits before the first Submit, on an
// out of range index or with a field that does not parse are ignored and report false.
func (s *Session) EditJoint(index int, x, y, z string) (chain.LinkUpdateResult, bool) {
	if s.chain == nil {
		return chain.LinkUpdateResult{}, false
	}
	position, err := chain.ParseCoordinates(x, y, z)
	if err != nil {
		s.logger.Debugw("ignoring joint edit", "joint", index, "error", err)
		return chain.LinkUpdateResult{}, false
	}
	res, err := s.SetJoint(index, position)
	if err != nil {
		s.logger.Debugw("ignoring joint edit", "joint", index, "error", err)
		return chain.LinkUpdateResult{}, false
	}
	return res, true
}

// SetJoint moves joint index to position and redraws. Unlike EditJoint it reports why an
// update was rejected.
func (s *Session) SetJoint(index int, position r3.Vector) (chain.LinkUpdateResult, error) {
	if s.chain == nil {
		return chain.LinkUpdateResult{}, errors.New("no chain has been created")
	}
	res, err := s.chain.SetJoint(index, position)
	if err != nil {
		return chain.LinkUpdateResult{}, err
	}

	if res.Valid {
		s.logger.Debugw("link updated", "link", res.Index, "length", res.Length)
	} else {
		s.logger.Warnw("link exceeds max length", "link", res.Index, "length", res.Length, "max_length", s.chain.MaxLength())
	}
	s.redraw()
	return res, nil
}

func (s *Session) redraw() {
	if s.renderer == nil {
		return
	}
	if err := view.Draw(s.renderer, view.Project(s.chain)); err != nil {
		s.logger.Errorw("failed to draw chain", "error", err)
	}
}
