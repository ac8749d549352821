package maker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSquirrel emulates a successful pack: it records its arguments and
// drops RELEASES, a full package and Setup.exe into --releaseDir.
const fakeSquirrel = `
printf '%s\n' "$@" > "$TMPDIR_ARGS"
dir=""
while [ $# -gt 0 ]; do
	if [ "$1" = "--releaseDir" ]; then dir="$2"; fi
	shift
done
touch "$dir/RELEASES" "$dir/MyApp-2.0.0-beta3-full.nupkg" "$dir/Setup.exe"
echo "Done"
`

// failingSquirrel leaves a stray Setup.exe behind and fails.
const failingSquirrel = `
dir=""
while [ $# -gt 0 ]; do
	if [ "$1" = "--releaseDir" ]; then dir="$2"; fi
	shift
done
touch "$dir/Setup.exe"
echo "Invalid icon format" >&2
exit 2
`

// writeFakeTool writes an executable shell script standing in for Squirrel.exe.
// The script receives the path of an argument log via $TMPDIR_ARGS.
func writeFakeTool(t *testing.T, body string) (tool, argsLog string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}

	dir := t.TempDir()
	argsLog = filepath.Join(dir, "args.txt")
	tool = filepath.Join(dir, "Squirrel.exe")

	script := "#!/bin/sh\nTMPDIR_ARGS='" + argsLog + "'\n" + body
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755)) //nolint:gosec // Test executable.

	return tool, argsLog
}
