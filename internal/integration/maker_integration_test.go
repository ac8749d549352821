package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/squirrel-maker/internal/config"
	"github.com/oshokin/squirrel-maker/internal/domain/release"
	"github.com/oshokin/squirrel-maker/internal/repository/artifact"
	"github.com/oshokin/squirrel-maker/internal/repository/report"
	"github.com/oshokin/squirrel-maker/internal/service/maker"
)

// squirrelScript drops the usual Squirrel outputs into --releaseDir.
const squirrelScript = `#!/bin/sh
dir=""
while [ $# -gt 0 ]; do
	if [ "$1" = "--releaseDir" ]; then dir="$2"; fi
	shift
done
touch "$dir/RELEASES" "$dir/my-app-1.0.0-full.nupkg" "$dir/Setup.exe" "$dir/Setup.msi" "$dir/build.log"
mkdir -p "$dir/stale"
`

// TestMaker_DiscoversSettingsInWorkingDirectory runs a pass from a project
// directory that only has package.json and squirrel-maker.yaml.
func TestMaker_DiscoversSettingsInWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}

	// Setup test directory and change working directory.
	dir := t.TempDir()
	t.Chdir(dir)

	tool := filepath.Join(dir, "Squirrel.exe")
	require.NoError(t, os.WriteFile(tool, []byte(squirrelScript), 0o755)) //nolint:gosec // Test executable.
	require.NoError(t, os.WriteFile("package.json",
		[]byte(`{"name":"my-app","version":"1.0.0","author":"Oleg Shokin"}`), 0o600))
	require.NoError(t, config.Save(config.DefaultConfigFilename, &config.Config{
		Tool:    tool,
		Release: release.Config{MSI: release.MSIx64},
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer

	err := maker.Run(ctx, &maker.Options{SourceDir: "app", Output: &out})
	require.NoError(t, err)

	releaseDir, err := filepath.Abs(filepath.Join(config.DefaultMakeDir, release.OutputSubdirectory, config.DefaultArch))
	require.NoError(t, err)

	set, err := artifact.Scan(releaseDir)
	require.NoError(t, err)
	require.Len(t, set, 4)
	require.Len(t, set.OfKind(artifact.KindMSI), 1)

	r, err := report.NewFileRepository(filepath.Join(releaseDir, report.DefaultFilename)).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "my-app", r.PackID)
	require.Contains(t, r.Command, "--msi")
	require.Len(t, r.Artifacts, 4)
}
