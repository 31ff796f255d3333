// Package chain holds the incremental model of a serial kinematic chain: an ordered list of
// joint positions anchored at the origin, and the length of every link between consecutive
// joints checked against a single max length.
package chain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// ExceedsMaxLength is displayed in place of a link's length when it is longer than the chain's
// max link length.
const ExceedsMaxLength = "Exceeds Max Length"

// MaxJoints is the largest chain New accepts.
const MaxJoints = 10000

// Joint is a point in 3D space that is part of the chain.
type Joint = r3.Vector

// LinkState describes what is known about a link.
type LinkState int

const (
	// LinkUnset means the link's far joint has not been entered yet.
	LinkUnset LinkState = iota
	// LinkValid means the link is no longer than the max length.
	LinkValid
	// LinkExceedsMax means the link is longer than the max length. This is not an error; the
	// joint is still committed.
	LinkExceedsMax
)

func (s LinkState) String() string {
	switch s {
	case LinkUnset:
		return "unset"
	case LinkValid:
		return "valid"
	case LinkExceedsMax:
		return "exceeds max"
	default:
		return fmt.Sprintf("LinkState(%d)", int(s))
	}
}

// Link connects joint Index-1 to joint Index.
type Link struct {
	Index  int
	Length float64
	State  LinkState
}

// Valid is true when the link has been computed and is within the max length.
func (l Link) Valid() bool {
	return l.State == LinkValid
}

// Display returns the text shown in the link's read-only field.
func (l Link) Display() string {
	switch l.State {
	case LinkValid:
		return strconv.FormatFloat(l.Length, 'f', 2, 64)
	case LinkExceedsMax:
		return ExceedsMaxLength
	default:
		return ""
	}
}

// LinkUpdateResult is the state of a link right after one of its joints was set.
type LinkUpdateResult struct {
	Index   int
	Length  float64
	Valid   bool
	Display string
}

func (l Link) result() LinkUpdateResult {
	return LinkUpdateResult{
		Index:   l.Index,
		Length:  l.Length,
		Valid:   l.Valid(),
		Display: l.Display(),
	}
}

// Chain is an ordered sequence of joints. Joint 0 is the base and is always at the origin.
// Chain is not safe for concurrent use.
type Chain struct {
	joints    []Joint
	assigned  []bool
	links     []Link
	maxLength float64
}

// New returns a chain of numJoints joints, all at the origin, with every link unset.
func New(numJoints int, maxLinkLength float64) (*Chain, error) {
	if numJoints < 2 {
		return nil, &ValidationError{Reason: reasonTooFewJoints}
	}
	if numJoints > MaxJoints {
		return nil, &ValidationError{Reason: reasonTooManyJoints}
	}
	if !(maxLinkLength > 0) {
		return nil, &ValidationError{Reason: reasonMaxLengthNotPos}
	}

	c := &Chain{
		joints:    make([]Joint, numJoints),
		assigned:  make([]bool, numJoints),
		links:     make([]Link, numJoints-1),
		maxLength: maxLinkLength,
	}
	c.assigned[0] = true
	for i := range c.links {
		c.links[i] = Link{Index: i + 1}
	}
	return c, nil
}

// SetJoint moves joint index to position and recomputes the link between joint index-1 and
// joint index. A link longer than the max length is still committed and reported as such.
func (c *Chain) SetJoint(index int, position r3.Vector) (LinkUpdateResult, error) {
	if index < 1 || index >= len(c.joints) {
		return LinkUpdateResult{}, &IndexError{Index: index, NumJoints: len(c.joints)}
	}
	for axis, v := range [3]float64{position.X, position.Y, position.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return LinkUpdateResult{}, &ParseError{
				Field: axisNames[axis],
				Input: strconv.FormatFloat(v, 'g', -1, 64),
				Err:   errNotFinite,
			}
		}
	}

	c.joints[index] = position
	c.assigned[index] = true

	link := &c.links[index-1]
	link.Length = position.Distance(c.joints[index-1])
	if link.Length > c.maxLength {
		link.State = LinkExceedsMax
	} else {
		link.State = LinkValid
	}
	return link.result(), nil
}

// SetJointText parses the three coordinate fields of joint index and sets it. If any field
// fails to parse the chain is left untouched and a *ParseError is returned.
func (c *Chain) SetJointText(index int, x, y, z string) (LinkUpdateResult, error) {
	position, err := ParseCoordinates(x, y, z)
	if err != nil {
		return LinkUpdateResult{}, err
	}
	return c.SetJoint(index, position)
}

// NumJoints returns the number of joints, including the base.
func (c *Chain) NumJoints() int {
	return len(c.joints)
}

// MaxLength returns the max length every link is checked against.
func (c *Chain) MaxLength() float64 {
	return c.maxLength
}

// Joint returns the position of joint i. Placeholder joints are at the origin.
func (c *Chain) Joint(i int) Joint {
	return c.joints[i]
}

// Joints returns a copy of every joint position in index order.
func (c *Chain) Joints() []Joint {
	out := make([]Joint, len(c.joints))
	copy(out, c.joints)
	return out
}

// Assigned reports whether joint i holds a user supplied position. The base is always assigned.
func (c *Chain) Assigned(i int) bool {
	return c.assigned[i]
}

// Link returns the link ending at joint i, for 1 <= i < NumJoints.
func (c *Chain) Link(i int) Link {
	return c.links[i-1]
}

// Links returns a copy of every link, the first element being link 1.
func (c *Chain) Links() []Link {
	out := make([]Link, len(c.links))
	copy(out, c.links)
	return out
}

// Results returns the display state of every link.
func (c *Chain) Results() []LinkUpdateResult {
	out := make([]LinkUpdateResult, 0, len(c.links))
	for _, l := range c.links {
		out = append(out, l.result())
	}
	return out
}

// Clone returns a deep copy of the chain.
func (c *Chain) Clone() *Chain {
	clone := &Chain{
		joints:    c.Joints(),
		assigned:  make([]bool, len(c.assigned)),
		links:     c.Links(),
		maxLength: c.maxLength,
	}
	copy(clone.assigned, c.assigned)
	return clone
}

// String prints out a table of each joint with the link that ends at it.
func (c *Chain) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Joint", "Position", "Link", "Length"})
	for i, j := range c.joints {
		position := "-"
		if c.assigned[i] {
			position = fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", j.X, j.Y, j.Z)
		}
		linkName, length := "", ""
		if i > 0 {
			linkName = fmt.Sprintf("Link %d", i)
			length = c.links[i-1].Display()
			if length == "" {
				length = "-"
			}
		}
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("Joint %d", i+1),
			position,
			linkName,
			length,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Max", strconv.FormatFloat(c.maxLength, 'f', 2, 64)})
	return t.Render()
}

var axisNames = [3]string{"x", "y", "z"}

func parseCoordinate(field, input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Input: input, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Field: field, Input: input, Err: errNotFinite}
	}
	return v, nil
}

// ParseCoordinates parses one text field per axis into a position.
func ParseCoordinates(x, y, z string) (r3.Vector, error) {
	var coords [3]float64
	for axis, field := range [3]string{x, y, z} {
		v, err := parseCoordinate(axisNames[axis], field)
		if err != nil {
			return r3.Vector{}, err
		}
		coords[axis] = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// ParsePosition parses "x,y,z" into a position. Coordinates may be separated by commas,
// whitespace or both.
func ParsePosition(s string) (r3.Vector, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return r3.Vector{}, &ParseError{Input: s, Err: errors.Errorf("expected 3 coordinates, got %d", len(fields))}
	}
	return ParseCoordinates(fields[0], fields[1], fields[2])
}
