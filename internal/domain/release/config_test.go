package release

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testManifest() *Manifest {
	return &Manifest{
		Name:    "my-app",
		Version: "1.4.0-beta.2",
		Author:  "Oleg Shokin",
	}
}

func testTarget(t *testing.T) *Target {
	t.Helper()

	return &Target{
		Arch:      "x64",
		MakeDir:   t.TempDir(),
		SourceDir: "/build/my-app",
	}
}

// TestResolveDefaults verifies every default is taken from the manifest and target.
func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := new(Config).Resolve(testManifest(), testTarget(t))
	require.NoError(t, err)

	require.Equal(t, "my-app", cfg.PackID)
	require.Equal(t, "1.4.0-beta2", cfg.PackVersion)
	require.Equal(t, "/build/my-app", cfg.PackDir)
	require.Equal(t, "my-app", cfg.PackTitle)
	require.Equal(t, "Oleg Shokin", cfg.PackAuthors)
	require.True(t, cfg.SkipDelta())
	require.False(t, cfg.IncludePDB)
	require.Empty(t, cfg.Framework)
}

// TestResolveExplicitValuesWin ensures explicit values override defaults and the title follows the id.
func TestResolveExplicitValuesWin(t *testing.T) {
	t.Parallel()

	noDelta := false
	in := &Config{
		PackID:      "MyApp",
		PackVersion: "2.0.0-beta.3",
		PackAuthors: "Acme",
		NoDelta:     &noDelta,
	}

	cfg, err := in.Resolve(testManifest(), testTarget(t))
	require.NoError(t, err)

	require.Equal(t, "MyApp", cfg.PackID)
	require.Equal(t, "MyApp", cfg.PackTitle)
	require.Equal(t, "2.0.0-beta3", cfg.PackVersion)
	require.Equal(t, "Acme", cfg.PackAuthors)
	require.False(t, cfg.SkipDelta())

	// The input is untouched.
	require.Equal(t, "2.0.0-beta.3", in.PackVersion)
	require.Empty(t, in.PackTitle)
}

// TestValidateRejectsBadValues checks the configuration error taxonomy.
func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		cfg   Config
		field string
	}{
		"unknown framework": {
			cfg:   Config{Framework: "net6.0-x64,net9"},
			field: "framework",
		},
		"empty framework token": {
			cfg:   Config{Framework: "net48,"},
			field: "framework",
		},
		"bad msi": {
			cfg:   Config{MSI: "arm64"},
			field: "msi",
		},
		"sign template without placeholder": {
			cfg:   Config{SignTemplate: "signtool sign /a"},
			field: "signTemplate",
		},
		"blank main exe": {
			cfg:   Config{MainExes: []string{"app.exe", " "}},
			field: "mainExe[1]",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.cfg.Resolve(testManifest(), testTarget(t))
			require.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			require.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

// TestResolveRequiresIdentity ensures a missing manifest and config fail fast.
func TestResolveRequiresIdentity(t *testing.T) {
	t.Parallel()

	_, err := new(Config).Resolve(nil, nil)
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorIs(t, err, errRequired)
}

// TestValidateAcceptsFrameworkList checks comma-joined known tokens.
func TestValidateAcceptsFrameworkList(t *testing.T) {
	t.Parallel()

	cfg := &Config{Framework: "net6.0-x64, vcredist143-x86", MSI: MSIx64, SignTemplate: "signtool sign {{file}}"}

	resolved, err := cfg.Resolve(testManifest(), testTarget(t))
	require.NoError(t, err)
	require.Equal(t, "net6.0-x64, vcredist143-x86", resolved.Framework)
}

// TestCloneIsDeep verifies pointer and slice fields are copied.
func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	require.Nil(t, (*Config)(nil).Clone())

	noDelta := true
	a := &Config{PackID: "a", NoDelta: &noDelta, MainExes: []string{"a.exe"}}
	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a.NoDelta, b.NoDelta)

	b.MainExes[0] = "b.exe"
	require.Equal(t, "a.exe", a.MainExes[0])
}

// TestTargetOutputDir checks the per-arch output layout.
func TestTargetOutputDir(t *testing.T) {
	t.Parallel()

	target := testTarget(t)

	dir, err := target.OutputDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(target.MakeDir, "clowd.squirrel.windows", "x64"), dir)
	require.True(t, filepath.IsAbs(dir))

	_, err = (&Target{MakeDir: target.MakeDir}).OutputDir()
	require.ErrorIs(t, err, ErrConfiguration)
}

// TestHasConflictingSigning flags configs that set both signing options.
func TestHasConflictingSigning(t *testing.T) {
	t.Parallel()

	require.False(t, (&Config{SignParams: "/a"}).HasConflictingSigning())
	require.True(t, (&Config{SignParams: "/a", SignTemplate: "sign {{file}}"}).HasConflictingSigning())
}
