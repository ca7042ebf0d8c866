package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
	"github.com/pyprojconv/pyprojconv/pkg/pyproject"
)

// convertOpts holds the command-line flags shared by the conversion
// commands.
type convertOpts struct {
	input  string // source pyproject.toml path
	output string // destination path
	python string // specifier for the synthesized python entry (to-poetry only)
}

// toPoetryCommand creates the to-poetry command, converting a pip-style
// pyproject.toml to the Poetry convention.
func (c *CLI) toPoetryCommand() *cobra.Command {
	opts := convertOpts{input: "pyproject.toml", python: pyproject.DefaultPythonVersion}

	cmd := &cobra.Command{
		Use:   "to-poetry",
		Short: "Convert a pip-style pyproject.toml to the Poetry convention",
		Long: `Convert a PEP 621 pip-style pyproject.toml to the Poetry convention.

The dependencies array becomes a [tool.poetry.dependencies] mapping, a
python entry is synthesized first, the dev optional-dependencies group
becomes [tool.poetry.group.dev.dependencies], and the build system is
switched to poetry-core. Unrelated [tool.*] sections are carried
through unchanged; [tool.setuptools] is dropped.

Examples:
  pyprojconv to-poetry -o pyproject_poetry.toml
  pyprojconv to-poetry -i legacy/pyproject.toml -o pyproject.toml --python "^3.12"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), opts, pyproject.DialectPoetry)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", opts.input, "input pyproject.toml path")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (required)")
	cmd.Flags().StringVar(&opts.python, "python", opts.python, "specifier for the synthesized python dependency")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// toPipCommand creates the to-pip command, converting a Poetry
// pyproject.toml to the PEP 621 pip convention.
func (c *CLI) toPipCommand() *cobra.Command {
	opts := convertOpts{input: "pyproject.toml"}

	cmd := &cobra.Command{
		Use:   "to-pip",
		Short: "Convert a Poetry pyproject.toml to the pip convention",
		Long: `Convert a Poetry pyproject.toml to the PEP 621 pip convention.

The [tool.poetry.dependencies] mapping becomes a dependencies array of
requirement strings (caret and tilde specifiers become version ranges),
the python entry is dropped, the dev group becomes the dev
optional-dependencies array, and the build system is switched to
setuptools. Unrelated [tool.*] sections are carried through unchanged;
[tool.poetry] is dropped.

Examples:
  pyprojconv to-pip -o pyproject_pip.toml
  pyprojconv to-pip -i poetry/pyproject.toml -o pyproject.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), opts, pyproject.DialectPip)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", opts.input, "input pyproject.toml path")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runConvert loads the source document, verifies it uses the opposite
// convention, converts it, and writes the result. The run either
// completes or fails outright on the first error.
func (c *CLI) runConvert(ctx context.Context, opts convertOpts, target pyproject.Dialect) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePath(opts.input); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}

	prog := newProgress(logger)
	logger.Debugf("Loading %s", opts.input)
	doc, err := pyproject.Load(opts.input)
	if err != nil {
		return err
	}

	src, err := doc.Detect()
	if err != nil {
		return err
	}
	if src == target {
		return errors.New(errors.ErrCodeInvalidInput,
			"%s already uses the %s convention", opts.input, target)
	}

	logger.Debugf("Converting %s convention to %s", src, target)
	out, err := pyproject.Convert(doc, target, opts.python)
	if err != nil {
		return err
	}

	if err := out.Save(opts.output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", opts.input))

	printSuccess("Converted %s (%s %s %s)", opts.input, src, iconArrow,
		StyleHighlight.Render(string(target)))
	printFile(opts.output)
	return nil
}
