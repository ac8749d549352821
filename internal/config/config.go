package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
)

// Config holds the settings of one squirrel-maker project.
type Config struct {
	// Tool is the Squirrel executable name or path.
	Tool string `mapstructure:"tool" yaml:"tool,omitempty"`
	// Arch is the target CPU architecture.
	Arch string `mapstructure:"arch" yaml:"arch,omitempty"`
	// MakeDir is the base make output directory.
	MakeDir string `mapstructure:"makeDir" yaml:"makeDir,omitempty"`
	// Manifest is the path to package.json, or the directory that holds it.
	Manifest string `mapstructure:"manifest" yaml:"manifest,omitempty"`
	// PublishDir, when set, receives a verified copy of every artifact.
	PublishDir string `mapstructure:"publishDir" yaml:"publishDir,omitempty"`
	// Release holds the Squirrel pack options.
	Release release.Config `mapstructure:"release" yaml:"release"`
}

const (
	// DefaultConfigFilename is looked up in the working directory.
	DefaultConfigFilename = "squirrel-maker.yaml"

	// XDGConfigFile is looked up under the XDG config directories.
	XDGConfigFile = "squirrel-maker/config.yaml"

	// DefaultTool is the Squirrel executable looked up on PATH.
	DefaultTool = "Squirrel.exe"

	// DefaultArch is the target architecture when none is configured.
	DefaultArch = "x64"

	// DefaultManifest is the manifest path relative to the working directory.
	DefaultManifest = "package.json"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// envPrefix prefixes environment overrides, e.g. SQUIRREL_RELEASE_PACKID.
	envPrefix = "SQUIRREL"
)

// DefaultMakeDir is the make directory when none is configured.
//
//nolint:gochecknoglobals // Built with filepath.Join for the host separator.
var DefaultMakeDir = filepath.Join("out", "make")

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBadArch is returned when the arch cannot be used as a directory name.
	errBadArch = errors.New("arch must be a plain name")
)

// envKeys are the settings that can be overridden from the environment.
//
//nolint:gochecknoglobals // Read-only list.
var envKeys = []string{
	"tool", "arch", "makeDir", "manifest", "publishDir",
	"release.packId", "release.packVersion", "release.packDir", "release.packTitle",
	"release.packAuthors", "release.includePdb", "release.releaseNotes",
	"release.signParams", "release.signTemplate", "release.noDelta",
	"release.framework", "release.splashImage", "release.icon", "release.appIcon",
	"release.msi", "release.baseUrl", "release.addSearchPath", "release.debugSetupExe",
	"release.mainExes",
}

// Find returns the settings file to use when none is given explicitly:
// DefaultConfigFilename in the working directory, then XDGConfigFile.
func Find() (string, bool) {
	if _, err := os.Stat(DefaultConfigFilename); err == nil {
		return DefaultConfigFilename, true
	}

	if path, err := xdg.SearchConfigFile(XDGConfigFile); err == nil {
		return path, true
	}

	return "", false
}

// Load reads settings from path with environment overrides and applies defaults.
// An empty path falls back to Find; if nothing is found only the environment
// and defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path == "" {
		path, _ = Find()
	}

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings as YAML to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the fields that are not release options.
// Release options are validated once resolved against the manifest.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}

	if cfg.Arch == "" {
		cfg.Arch = DefaultArch
	}

	if cfg.MakeDir == "" {
		cfg.MakeDir = DefaultMakeDir
	}

	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}

	if strings.ContainsAny(cfg.Arch, `/\`) || cfg.Arch == "." || cfg.Arch == ".." {
		return fmt.Errorf("%q: %w", cfg.Arch, errBadArch)
	}

	return nil
}
