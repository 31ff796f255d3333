package cli

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/chainviz/chain"
	"go.viam.com/chainviz/session"
	"go.viam.com/chainviz/view"
	"go.viam.com/chainviz/view/ggrender"
)

func newRenderer(c *cli.Context) *ggrender.Renderer {
	return ggrender.New(c.String(outFlag), ggrender.WithSize(c.Int(widthFlag), c.Int(heightFlag)))
}

// PlotAction builds a chain from its flags and positional joint arguments, prints the link
// table and writes the plot.
func PlotAction(c *cli.Context) (err error) {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, logger.Sync())
	}()

	// Intermediate states are not plotted; only the finished chain is drawn.
	sess := session.New(logger.Sublogger("session"), nil, nil)

	err = sess.Submit(
		strconv.Itoa(c.Int(jointsFlag)),
		strconv.FormatFloat(c.Float64(maxLengthFlag), 'g', -1, 64),
	)
	if err != nil {
		return err
	}

	positions := c.Args().Slice()
	if len(positions) > c.Int(jointsFlag)-1 {
		return errors.Errorf("got %d joint positions for a chain of %d joints", len(positions), c.Int(jointsFlag))
	}
	for i, arg := range positions {
		position, err := chain.ParsePosition(arg)
		if err != nil {
			return errors.Wrapf(err, "joint %d", i+2)
		}
		if _, err := sess.SetJoint(i+1, position); err != nil {
			return err
		}
	}

	geometry, _ := sess.Geometry()
	if err := view.Draw(newRenderer(c), geometry); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, sess.Chain().String())
	fmt.Fprintf(c.App.Writer, "wrote %s\n", c.String(outFlag))
	return nil
}
