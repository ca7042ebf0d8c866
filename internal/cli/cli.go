// Package cli implements the pyprojconv command-line interface.
//
// This package provides commands for converting pyproject.toml files
// between the pip (PEP 621) and Poetry conventions and for inspecting
// which convention a file uses. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - to-poetry: Convert a pip-style pyproject.toml to the Poetry convention
//   - to-pip: Convert a Poetry pyproject.toml to the pip convention
//   - detect: Report which convention a file uses
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyprojconv/pyprojconv/pkg/buildinfo"
	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

// appName is the application name used for display.
const appName = "pyprojconv"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The persistent --verbose flag switches the logger to
// debug level, and the logger is attached to the command context so
// subcommands can retrieve it with loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Convert pyproject.toml files between pip and Poetry conventions",
		Long: `Pyprojconv converts Python project metadata between the PEP 621 pip
convention ([project] with a dependencies array) and the Poetry
convention ([tool.poetry] with a dependencies mapping), translating
version specifiers and carrying unrelated tool sections through
unchanged.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.toPoetryCommand())
	root.AddCommand(c.toPipCommand())
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the root command with the given arguments, printing any
// resulting error in styled form before returning it for exit-code
// handling. Cancellation is not reported; the caller maps it to its
// exit code.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, context.Canceled) {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}
	return nil
}
