package cli

import (
	"github.com/spf13/cobra"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
	"github.com/pyprojconv/pyprojconv/pkg/pyproject"
)

// detectCommand creates the detect command, reporting which convention
// a pyproject.toml file uses.
func (c *CLI) detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <pyproject.toml>",
		Short: "Report which convention a pyproject.toml file uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(args[0]); err != nil {
				return err
			}
			doc, err := pyproject.Load(args[0])
			if err != nil {
				return err
			}
			dialect, err := doc.Detect()
			if err != nil {
				return err
			}
			printKeyValue("convention", string(dialect))
			printDetail("from %s", args[0])
			return nil
		},
	}
}
