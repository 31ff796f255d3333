package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/chainviz/chain"
	"go.viam.com/chainviz/session"
)

type nextAction int

const (
	actionEditJoint nextAction = iota
	actionRestart
	actionQuit
)

// prompter collects the values the user types in.
type prompter interface {
	AskChain() (numJoints, maxLength string, err error)
	AskJoint(index int) (x, y, z string, err error)
	AskNext(numJoints int) (action nextAction, joint int, err error)
}

// InteractiveAction asks for the chain dimensions, then for every joint, replotting after each
// accepted edit.
func InteractiveAction(c *cli.Context) (err error) {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, logger.Sync())
	}()

	sess := session.New(logger.Sublogger("session"), newRenderer(c), &ptermMessages{out: c.App.ErrWriter})
	err = runInteractive(huhPrompter{}, sess, c.App.Writer)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func runInteractive(p prompter, sess *session.Session, out io.Writer) error {
	for {
		numJoints, maxLength, err := p.AskChain()
		if err != nil {
			return err
		}
		if err := sess.Submit(numJoints, maxLength); err != nil {
			// Already shown to the user; ask again with empty fields.
			continue
		}

		n := sess.Chain().NumJoints()
		for i := 1; i < n; i++ {
			if err := askJoint(p, sess, out, i); err != nil {
				return err
			}
		}

		restart, err := editLoop(p, sess, out, n)
		if err != nil || !restart {
			return err
		}
	}
}

func editLoop(p prompter, sess *session.Session, out io.Writer, numJoints int) (bool, error) {
	for {
		action, joint, err := p.AskNext(numJoints)
		if err != nil {
			return false, err
		}
		switch action {
		case actionEditJoint:
			if err := askJoint(p, sess, out, joint); err != nil {
				return false, err
			}
		case actionRestart:
			return true, nil
		case actionQuit:
			fmt.Fprintln(out, sess.Chain().String())
			return false, nil
		}
	}
}

// askJoint prompts until the joint's fields parse.
func askJoint(p prompter, sess *session.Session, out io.Writer, index int) error {
	for {
		x, y, z, err := p.AskJoint(index)
		if err != nil {
			return err
		}
		res, ok := sess.EditJoint(index, x, y, z)
		if !ok {
			continue
		}
		printLink(out, res)
		return nil
	}
}

func printLink(out io.Writer, res chain.LinkUpdateResult) {
	if res.Valid {
		pterm.Success.WithWriter(out).Printfln("Link %d: %s", res.Index, res.Display)
		return
	}
	pterm.Warning.WithWriter(out).Printfln("Link %d: %s", res.Index, res.Display)
}

// ptermMessages shows session errors on the terminal.
type ptermMessages struct {
	out io.Writer
}

func (m *ptermMessages) ShowError(title, text string) {
	pterm.Error.WithWriter(m.out).Printfln("%s: %s", title, text)
}

type huhPrompter struct{}

func (huhPrompter) AskChain() (string, string, error) {
	var numJoints, maxLength string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Number of Joints:").Value(&numJoints),
		huh.NewInput().Title("Max. Link Length:").Value(&maxLength),
	)).Run()
	return numJoints, maxLength, err
}

func (huhPrompter) AskJoint(index int) (string, string, string, error) {
	var x, y, z string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(fmt.Sprintf("Joint %d:", index+1)).Prompt("x: ").Value(&x),
		huh.NewInput().Prompt("y: ").Value(&y),
		huh.NewInput().Prompt("z: ").Value(&z),
	)).Run()
	return x, y, z, err
}

func (huhPrompter) AskNext(numJoints int) (nextAction, int, error) {
	action := actionQuit
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[nextAction]().
			Title("Next").
			Options(
				huh.NewOption("Edit a joint", actionEditJoint),
				huh.NewOption("Start over", actionRestart),
				huh.NewOption("Quit", actionQuit),
			).
			Value(&action),
	)).Run()
	if err != nil || action != actionEditJoint {
		return action, 0, err
	}

	joint := 1
	options := make([]huh.Option[int], 0, numJoints-1)
	for i := 1; i < numJoints; i++ {
		options = append(options, huh.NewOption("Joint "+strconv.Itoa(i+1), i))
	}
	err = huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title("Joint").Options(options...).Value(&joint),
	)).Run()
	return action, joint, err
}
