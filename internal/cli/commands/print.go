package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/burl/pkg/geom"
)

// NewPrintCommand creates the print command.
func NewPrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print <model.json> [more...]",
		Short: "Print a model tree in readable form",
		Long: `Decode one or more model JSON files and print their expression trees,
one node per line, indented by depth. The printed tree reflects the
canonical form: empty branches are collapsed and adjacent transforms
fused.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				n, err := loadModel(path)
				if err != nil {
					return err
				}
				if i > 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				if len(args) > 1 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", path)
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), geom.Format(n))
			}
			return nil
		},
	}
}
