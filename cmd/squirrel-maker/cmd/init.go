package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/squirrel-maker/internal/config"
)

var errConfigExists = errors.New("settings file already exists")

// initForce allows overwriting an existing settings file.
var initForce bool

// initCmd writes a settings file with the default values.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a settings file with default values.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFilename
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s: %w", path, errConfigExists)
		}

		if err := config.Save(path, new(config.Config)); err != nil {
			return err
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)

		return err
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}
