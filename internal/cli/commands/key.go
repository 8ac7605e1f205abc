package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/burl/pkg/cachekey"
)

// NewKeyCommand creates the key command.
func NewKeyCommand() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "key <model.json> [more...]",
		Short: "Print the cache identity of a model tree",
		Long: `Decode one or more model JSON files and print the content-addressed
cache digest of each tree. Two files print the same digest exactly when
their trees canonicalize to the same geometry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				n, err := loadModel(path)
				if err != nil {
					return err
				}
				key := cachekey.ForNode(n)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%016x  %s\n", key.Digest(), path)
				if full {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", key)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Also print the full canonical key string")
	return cmd
}
