package maker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/squirrel-maker/internal/config"
	"github.com/oshokin/squirrel-maker/internal/domain/release"
	"github.com/oshokin/squirrel-maker/internal/repository/report"
)

// project lays out package.json and a settings file in a temp dir.
func project(t *testing.T, tool string, settings *config.Config) (dir, configPath string) {
	t.Helper()

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"name":"MyApp","version":"2.0.0-beta.3","author":{"name":"Acme"}}`), 0o600))

	settings.Tool = tool
	settings.Manifest = filepath.Join(dir, "package.json")
	settings.MakeDir = filepath.Join(dir, "out", "make")

	configPath = filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, config.Save(configPath, settings))

	return dir, configPath
}

// TestRunWritesReportAndPublishes runs the whole CLI flow against a fake tool.
func TestRunWritesReportAndPublishes(t *testing.T) {
	t.Parallel()

	tool, _ := writeFakeTool(t, fakeSquirrel)
	dir, configPath := project(t, tool, &config.Config{})
	feed := filepath.Join(dir, "feed")

	err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		SourceDir:  filepath.Join(dir, "app"),
		Overrides:  &config.Config{PublishDir: feed},
	})
	require.NoError(t, err)

	releaseDir := filepath.Join(dir, "out", "make", "clowd.squirrel.windows", "x64")

	r, err := report.NewFileRepository(filepath.Join(releaseDir, report.DefaultFilename)).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "MyApp", r.PackID)
	require.Equal(t, "2.0.0-beta3", r.PackVersion)
	require.Equal(t, "x64", r.Arch)
	require.Len(t, r.Artifacts, 3)
	require.Len(t, r.Published, 3)

	for _, a := range r.Artifacts {
		require.NotEmpty(t, a.Checksum, a.Path)
	}

	for _, name := range []string{"RELEASES", "MyApp-2.0.0-beta3-full.nupkg", "Setup.exe"} {
		_, err = os.Stat(filepath.Join(feed, name))
		require.NoError(t, err, name)
	}
}

// TestRunFailureWritesReportAndReturnsError keeps the exit code in the report.
func TestRunFailureWritesReportAndReturnsError(t *testing.T) {
	t.Parallel()

	tool, _ := writeFakeTool(t, failingSquirrel)
	dir, configPath := project(t, tool, &config.Config{})
	reportPath := filepath.Join(dir, "report.json")

	err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		SourceDir:  filepath.Join(dir, "app"),
		ReportPath: reportPath,
	})
	require.Error(t, err)

	r, err := report.NewFileRepository(reportPath).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, r.ExitCode)
	require.Empty(t, r.Artifacts)
}

// TestRunDryRunPrintsInvocation prints the command line and runs nothing.
func TestRunDryRunPrintsInvocation(t *testing.T) {
	t.Parallel()

	dir, configPath := project(t, "Squirrel.exe", &config.Config{
		Release: release.Config{Framework: "net6.0-x64", PackTitle: "My App"},
	})

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		SourceDir:  "/build/myapp",
		Overrides:  &config.Config{Arch: "ia32"},
		DryRun:     true,
		Output:     &out,
	})
	require.NoError(t, err)

	releaseDir := filepath.Join(dir, "out", "make", "clowd.squirrel.windows", "ia32")
	require.Equal(t,
		"Squirrel.exe pack --releaseDir "+releaseDir+
			` --packId MyApp --packVersion 2.0.0-beta3 --packDir /build/myapp --packTitle "My App"`+
			" --packAuthors Acme --noDelta --framework net6.0-x64\n",
		out.String())

	_, err = os.Stat(releaseDir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunRequiresSourceDir fails fast without an application directory.
func TestRunRequiresSourceDir(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), &Options{}), errSourceDirRequired)
}

// TestRunWithoutManifest accepts a config that names the package identity.
func TestRunWithoutManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, config.Save(configPath, &config.Config{
		Manifest: filepath.Join(dir, "missing", "package.json"),
		MakeDir:  filepath.Join(dir, "make"),
		Release:  release.Config{PackID: "MyApp", PackVersion: "1.0.0"},
	}))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: configPath,
		SourceDir:  "/build/myapp",
		DryRun:     true,
		Output:     &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "--packId MyApp --packVersion 1.0.0")

	require.NoError(t, config.Save(configPath, &config.Config{
		Manifest: filepath.Join(dir, "missing", "package.json"),
	}))

	err = Run(context.Background(), &Options{ConfigPath: configPath, SourceDir: "/build/myapp", DryRun: true, Output: &out})
	require.ErrorIs(t, err, os.ErrNotExist)
}
