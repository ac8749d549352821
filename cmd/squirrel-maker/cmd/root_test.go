package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalizeVersionCommand prints one normalized version per argument.
func TestNormalizeVersionCommand(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"normalize-version", "1.2.3", "1.2.3-beta.1", "1.0.0-rc.2-build.5"})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "1.2.3\n1.2.3-beta1\n1.0.0-rc2-build5\n", out.String())
}
