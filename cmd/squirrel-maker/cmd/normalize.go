package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
)

// normalizeVersionCmd prints versions the way they end up in package names.
var normalizeVersionCmd = &cobra.Command{
	Use:   "normalize-version <version>...",
	Short: "Print the Squirrel package version for semantic versions.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range args {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), release.NormalizeVersion(v)); err != nil {
				return err
			}
		}

		return nil
	},
}
