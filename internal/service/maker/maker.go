package maker

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
	"github.com/oshokin/squirrel-maker/internal/logger"
	"github.com/oshokin/squirrel-maker/internal/repository/artifact"
	"github.com/oshokin/squirrel-maker/internal/service/squirrel"
)

// DefaultDirMode is used when creating the output directory.
const DefaultDirMode os.FileMode = 0o755

// Packer produces Windows installer artifacts for a built application.
type Packer interface {
	Pack(ctx context.Context, cfg *release.Config, target *release.Target) (artifact.Set, error)
}

// Invoker runs the Squirrel executable.
type Invoker interface {
	Tool() string
	Invoke(ctx context.Context, args []string) (*squirrel.Result, error)
}

// Plan is a resolved pass that has not run yet.
type Plan struct {
	// Config is the fully-defaulted release configuration.
	Config *release.Config
	// ReleaseDir is the absolute output directory.
	ReleaseDir string
	// Args is the compiled Squirrel argument list.
	Args []string
}

// Outcome is everything a finished or failed pass produced.
type Outcome struct {
	Plan
	// Invocation is nil if the tool was never started.
	Invocation *squirrel.Result
	// Artifacts is nil unless the scan ran.
	Artifacts artifact.Set
}

// Maker implements Packer on top of an Invoker.
// It keeps no state between calls.
type Maker struct {
	invoker Invoker
}

var _ Packer = (*Maker)(nil)

// New creates a Maker running tool through invoker.
func New(invoker Invoker) *Maker {
	return &Maker{invoker: invoker}
}

// NewPlan resolves cfg against manifest and target and compiles the invocation.
func NewPlan(cfg *release.Config, manifest *release.Manifest, target *release.Target) (*Plan, error) {
	resolved, err := cfg.Resolve(manifest, target)
	if err != nil {
		return nil, err
	}

	releaseDir, err := target.OutputDir()
	if err != nil {
		return nil, err
	}

	return &Plan{
		Config:     resolved,
		ReleaseDir: releaseDir,
		Args:       squirrel.Compile(resolved, releaseDir),
	}, nil
}

// Pack runs a pass with no manifest; cfg must carry the package id and version.
func (m *Maker) Pack(ctx context.Context, cfg *release.Config, target *release.Target) (artifact.Set, error) {
	outcome, err := m.Make(ctx, cfg, nil, target)
	if err != nil {
		return nil, err
	}

	return outcome.Artifacts, nil
}

// Make runs a full pass: resolve, create the output directory, invoke Squirrel, scan.
// The returned Outcome is non-nil whenever a plan was built, even on failure.
func (m *Maker) Make(
	ctx context.Context,
	cfg *release.Config,
	manifest *release.Manifest,
	target *release.Target,
) (*Outcome, error) {
	plan, err := NewPlan(cfg, manifest, target)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Plan: *plan}

	if runtime.GOOS != "windows" {
		logger.WarnKV(ctx, "Squirrel only runs on Windows, the invocation will likely fail", "os", runtime.GOOS)
	}

	if plan.Config.HasConflictingSigning() {
		logger.Warn(ctx, "Both signParams and signTemplate are set, Squirrel will use only one of them")
	}

	if err = os.MkdirAll(plan.ReleaseDir, DefaultDirMode); err != nil {
		return outcome, fmt.Errorf("create output directory: %w", err)
	}

	lock, err := acquireLock(ctx, plan.ReleaseDir)
	if err != nil {
		return outcome, err
	}

	defer lock.release(ctx)

	logger.InfoKV(ctx, "Running Squirrel",
		"command", squirrel.CommandLine(m.invoker.Tool(), plan.Args))

	outcome.Invocation, err = m.invoker.Invoke(ctx, plan.Args)
	if err != nil {
		return outcome, fmt.Errorf("pack %s %s: %w", plan.Config.PackID, plan.Config.PackVersion, err)
	}

	logger.InfoKV(ctx, "Squirrel finished",
		"exit_code", outcome.Invocation.ExitCode,
		"duration", outcome.Invocation.Duration.String())

	outcome.Artifacts, err = artifact.Scan(plan.ReleaseDir)
	if err != nil {
		return outcome, err
	}

	if len(outcome.Artifacts) == 0 {
		logger.WarnKV(ctx, "Squirrel produced no artifacts", "release_dir", plan.ReleaseDir)
	}

	return outcome, nil
}
