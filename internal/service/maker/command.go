package maker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/squirrel-maker/internal/config"
	"github.com/oshokin/squirrel-maker/internal/domain/release"
	"github.com/oshokin/squirrel-maker/internal/logger"
	"github.com/oshokin/squirrel-maker/internal/manifest"
	"github.com/oshokin/squirrel-maker/internal/repository/report"
	"github.com/oshokin/squirrel-maker/internal/service/checksum"
	"github.com/oshokin/squirrel-maker/internal/service/publish"
	"github.com/oshokin/squirrel-maker/internal/service/squirrel"
)

// Options are inputs accepted by the maker entry point.
type Options struct {
	// ConfigPath is the optional settings file; empty means config.Find.
	ConfigPath string
	// SourceDir is the built application directory.
	SourceDir string
	// Overrides are applied on top of the settings file (command-line flags).
	Overrides *config.Config
	// ReportPath overrides where the make report is written.
	ReportPath string
	// DryRun prints the invocation instead of running it.
	DryRun bool
	// Output receives dry-run output. Defaults to os.Stdout.
	Output io.Writer
}

var errSourceDirRequired = errors.New("application directory is required")

// Run executes one make pass and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "squirrel-maker")

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	appManifest, err := loadManifest(ctx, settings)
	if err != nil {
		return err
	}

	target := &release.Target{
		Arch:      settings.Arch,
		MakeDir:   settings.MakeDir,
		SourceDir: opts.SourceDir,
	}

	ctx = logger.WithKV(ctx, "arch", target.Arch)

	if opts.DryRun {
		return printPlan(settings, appManifest, target, opts.Output)
	}

	outcome, err := New(squirrel.NewInvoker(settings.Tool)).Make(ctx, &settings.Release, appManifest, target)
	if err != nil {
		if outcome != nil && outcome.Invocation != nil {
			saveReport(ctx, opts, target.Arch, outcome, nil, nil)
		}

		return err
	}

	sums, err := checksum.Files(outcome.Artifacts.Paths())
	if err != nil {
		return fmt.Errorf("checksum artifacts: %w", err)
	}

	var published []string

	if settings.PublishDir != "" {
		logger.InfoKV(ctx, "Publishing artifacts", "publish_dir", settings.PublishDir)

		published, err = publish.Publish(ctx, outcome.Artifacts, sums, settings.PublishDir)
		if err != nil {
			return fmt.Errorf("publish artifacts: %w", err)
		}
	}

	saveReport(ctx, opts, target.Arch, outcome, sums, published)

	for _, a := range outcome.Artifacts {
		logger.InfoKV(ctx, "Artifact", "kind", a.Kind, "path", a.Path)
	}

	logger.InfoKV(ctx, "Make completed",
		"pack_id", outcome.Config.PackID,
		"pack_version", outcome.Config.PackVersion,
		"artifacts", len(outcome.Artifacts))

	return nil
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	if opts.SourceDir == "" {
		return nil, errSourceDirRequired
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	settings = config.Merge(settings, opts.Overrides)
	if err = config.Validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// loadManifest reads package.json. A missing manifest is tolerated when the
// settings already name the package id and version.
func loadManifest(ctx context.Context, settings *config.Config) (*release.Manifest, error) {
	appManifest, err := manifest.Load(settings.Manifest)
	if err == nil {
		return appManifest, nil
	}

	if errors.Is(err, os.ErrNotExist) && settings.Release.PackID != "" && settings.Release.PackVersion != "" {
		logger.WarnKV(ctx, "Manifest not found, using configured package identity", "manifest", settings.Manifest)
		return new(release.Manifest), nil
	}

	return nil, fmt.Errorf("load manifest: %w", err)
}

// printPlan writes the resolved invocation without running it.
func printPlan(settings *config.Config, appManifest *release.Manifest, target *release.Target, w io.Writer) error {
	plan, err := NewPlan(&settings.Release, appManifest, target)
	if err != nil {
		return err
	}

	if w == nil {
		w = os.Stdout
	}

	_, err = fmt.Fprintln(w, squirrel.CommandLine(settings.Tool, plan.Args))

	return err
}

// saveReport writes the make report; failures are logged, not returned,
// so they never mask the result of the pass itself.
func saveReport(
	ctx context.Context,
	opts *Options,
	arch string,
	outcome *Outcome,
	sums map[string]string,
	published []string,
) {
	path := opts.ReportPath
	if path == "" {
		path = filepath.Join(outcome.ReleaseDir, report.DefaultFilename)
	}

	r := &report.Report{
		Timestamp:   time.Now(),
		PackID:      outcome.Config.PackID,
		PackVersion: outcome.Config.PackVersion,
		Arch:        arch,
		ReleaseDir:  outcome.ReleaseDir,
		Command:     append([]string{outcome.Invocation.Tool}, outcome.Invocation.Args...),
		ExitCode:    outcome.Invocation.ExitCode,
		Duration:    outcome.Invocation.Duration,
		Published:   published,
	}

	for _, a := range outcome.Artifacts {
		r.Artifacts = append(r.Artifacts, report.Artifact{
			Path:     a.Path,
			Kind:     string(a.Kind),
			Checksum: sums[a.Path],
		})
	}

	repo := report.NewFileRepository(path)
	if err := repo.Save(ctx, r); err != nil {
		logger.WarnKV(ctx, "Unable to write make report", "path", path, "error", err)
		return
	}

	logger.InfoKV(ctx, "Make report written", "path", repo.Path())
}
