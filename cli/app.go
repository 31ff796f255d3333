// Package cli contains the chainviz command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/chainviz/logging"
)

const (
	debugFlag     = "debug"
	logLevelFlag  = "log-level"
	jointsFlag    = "joints"
	maxLengthFlag = "max-length"
	outFlag       = "out"
	widthFlag     = "width"
	heightFlag    = "height"
)

var renderFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    outFlag,
		Aliases: []string{"o"},
		Value:   "chain.png",
		Usage:   "write the plot to `FILE`",
	},
	&cli.IntFlag{
		Name:  widthFlag,
		Value: 500,
		Usage: "plot width in pixels",
	},
	&cli.IntFlag{
		Name:  heightFlag,
		Value: 400,
		Usage: "plot height in pixels",
	},
}

// NewApp returns the chainviz application writing to the given outputs.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "chainviz",
		Usage:           "define a serial chain of joints and plot it",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Value: "error",
				Usage: "minimum `LEVEL` logged to stderr: debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plot",
				Usage:     "build a chain from flags and plot it",
				ArgsUsage: "[x,y,z ...]",
				Description: `Each argument is the position of the next joint, starting at joint 2.
Joint 1 is the base and is always at the origin. Put "--" before the
positions if any of them starts with a minus sign.`,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:     jointsFlag,
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "number of joints, including the base",
					},
					&cli.Float64Flag{
						Name:     maxLengthFlag,
						Aliases:  []string{"l"},
						Required: true,
						Usage:    "maximum length of any link",
					},
				}, renderFlags...),
				Action: PlotAction,
			},
			{
				Name:   "interactive",
				Usage:  "enter the chain joint by joint and replot after every edit",
				Flags:  renderFlags,
				Action: InteractiveAction,
			},
		},
	}
}

// newLogger returns a logger writing to the app's error output at the requested level.
func newLogger(c *cli.Context) (logging.Logger, error) {
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return nil, err
	}
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	logger := logging.NewBlankLogger("chainviz")
	logger.SetLevel(level)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	return logger, nil
}
