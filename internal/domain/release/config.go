package release

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// SignTemplatePlaceholder is replaced by Squirrel with the path of the file to sign.
	SignTemplatePlaceholder = "{{file}}"

	// OutputSubdirectory is the folder under the make directory that holds per-arch outputs.
	OutputSubdirectory = "clowd.squirrel.windows"

	// DefaultNoDelta is used when NoDelta is not set explicitly.
	DefaultNoDelta = true
)

// Manifest is the part of the application's package manifest the maker relies on.
type Manifest struct {
	// Name is the package name, the default package id.
	Name string
	// Version is the semantic version of the application.
	Version string
	// Author is the default package authors string.
	Author string
}

// Target describes where a packaging run reads from and writes to.
type Target struct {
	// Arch is the target CPU architecture, e.g. x64 or ia32.
	Arch string
	// MakeDir is the base make output directory.
	MakeDir string
	// SourceDir is the built application payload.
	SourceDir string
}

// OutputDir returns <MakeDir>/clowd.squirrel.windows/<Arch> as an absolute path.
func (t *Target) OutputDir() (string, error) {
	if t.Arch == "" {
		return "", configurationError("arch", errRequired)
	}

	dir, err := filepath.Abs(filepath.Join(t.MakeDir, OutputSubdirectory, t.Arch))
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}

	return dir, nil
}

// Config is the release configuration of one packaging run.
// Empty strings and false booleans mean "not set"; Resolve fills in defaults.
type Config struct {
	// PackID is the package id. Defaults to the manifest name.
	PackID string `mapstructure:"packId" yaml:"packId,omitempty"`
	// PackVersion is the package version. Defaults to the manifest version.
	// It is always normalized with NormalizeVersion.
	PackVersion string `mapstructure:"packVersion" yaml:"packVersion,omitempty"`
	// PackDir is the directory the application was built to. Defaults to the target source directory.
	PackDir string `mapstructure:"packDir" yaml:"packDir,omitempty"`
	// PackTitle is the display name. Defaults to PackID.
	PackTitle string `mapstructure:"packTitle" yaml:"packTitle,omitempty"`
	// PackAuthors defaults to the manifest author.
	PackAuthors string `mapstructure:"packAuthors" yaml:"packAuthors,omitempty"`
	// IncludePDB adds *.pdb files to the release package.
	IncludePDB bool `mapstructure:"includePdb" yaml:"includePdb,omitempty"`
	// ReleaseNotes is a path to a markdown file with notes for this version.
	ReleaseNotes string `mapstructure:"releaseNotes" yaml:"releaseNotes,omitempty"`
	// SignParams is forwarded verbatim to signtool.
	SignParams string `mapstructure:"signParams" yaml:"signParams,omitempty"`
	// SignTemplate is a custom signing command containing SignTemplatePlaceholder.
	SignTemplate string `mapstructure:"signTemplate" yaml:"signTemplate,omitempty"`
	// NoDelta skips delta package generation. Nil means DefaultNoDelta.
	NoDelta *bool `mapstructure:"noDelta" yaml:"noDelta,omitempty"`
	// Framework is one or more comma-joined Framework tokens.
	Framework string `mapstructure:"framework" yaml:"framework,omitempty"`
	// SplashImage is shown while Setup.exe installs.
	SplashImage string `mapstructure:"splashImage" yaml:"splashImage,omitempty"`
	// Icon is the .ico for Setup.exe and Update.exe.
	Icon string `mapstructure:"icon" yaml:"icon,omitempty"`
	// AppIcon is the .ico shown in "Apps and Features".
	AppIcon string `mapstructure:"appIcon" yaml:"appIcon,omitempty"`
	// MSI requests a machine-wide MSI deployment tool of the given bitness.
	MSI MSIBitness `mapstructure:"msi" yaml:"msi,omitempty"`
	// BaseURL prefixes package URLs in the RELEASES file.
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl,omitempty"`
	// AddSearchPath is an extra directory to look for Setup.exe, Update.exe and friends.
	AddSearchPath string `mapstructure:"addSearchPath" yaml:"addSearchPath,omitempty"`
	// DebugSetupExe builds the bundle with the Setup.exe at this path.
	DebugSetupExe string `mapstructure:"debugSetupExe" yaml:"debugSetupExe,omitempty"`
	// MainExes are the SquirrelAware executables of the application.
	MainExes []string `mapstructure:"mainExes" yaml:"mainExes,omitempty"`
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	cloned := *c
	cloned.MainExes = slices.Clone(c.MainExes)

	if c.NoDelta != nil {
		noDelta := *c.NoDelta
		cloned.NoDelta = &noDelta
	}

	return &cloned
}

// SkipDelta reports whether delta packages are skipped, applying DefaultNoDelta.
func (c *Config) SkipDelta() bool {
	if c.NoDelta == nil {
		return DefaultNoDelta
	}

	return *c.NoDelta
}

// HasConflictingSigning reports whether both signing options are set.
// Squirrel accepts that, but only one of them takes effect.
func (c *Config) HasConflictingSigning() bool {
	return c.SignParams != "" && c.SignTemplate != ""
}

// Resolve returns a copy of c with every default applied and validated.
// manifest and target may be nil when c already carries every required value.
func (c *Config) Resolve(manifest *Manifest, target *Target) (*Config, error) {
	resolved := c.Clone()
	if resolved == nil {
		resolved = new(Config)
	}

	if manifest == nil {
		manifest = new(Manifest)
	}

	if target == nil {
		target = new(Target)
	}

	if resolved.PackID == "" {
		resolved.PackID = manifest.Name
	}

	if resolved.PackVersion == "" {
		resolved.PackVersion = manifest.Version
	}

	resolved.PackVersion = NormalizeVersion(resolved.PackVersion)

	if resolved.PackDir == "" {
		resolved.PackDir = target.SourceDir
	}

	if resolved.PackTitle == "" {
		resolved.PackTitle = resolved.PackID
	}

	if resolved.PackAuthors == "" {
		resolved.PackAuthors = manifest.Author
	}

	if resolved.NoDelta == nil {
		noDelta := DefaultNoDelta
		resolved.NoDelta = &noDelta
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// Validate checks a resolved config. It returns a *ConfigurationError for the first bad field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.PackID) == "":
		return configurationError("packId", errRequired)
	case strings.TrimSpace(c.PackVersion) == "":
		return configurationError("packVersion", errRequired)
	case strings.TrimSpace(c.PackDir) == "":
		return configurationError("packDir", errRequired)
	}

	if c.Framework != "" {
		if err := ValidateFrameworks(c.Framework); err != nil {
			return configurationError("framework", err)
		}
	}

	if c.MSI != "" && !c.MSI.IsValid() {
		return configurationError("msi", fmt.Errorf("%q: %w", c.MSI, errBadMSIBitness))
	}

	if c.SignTemplate != "" && !strings.Contains(c.SignTemplate, SignTemplatePlaceholder) {
		return configurationError("signTemplate", errNoSignPlaceholder)
	}

	for i, exe := range c.MainExes {
		if strings.TrimSpace(exe) == "" {
			return configurationError(fmt.Sprintf("mainExe[%d]", i), errRequired)
		}
	}

	return nil
}
