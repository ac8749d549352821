package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/squirrel-maker/internal/config"
	"github.com/oshokin/squirrel-maker/internal/domain/release"
	"github.com/oshokin/squirrel-maker/internal/logger"
	"github.com/oshokin/squirrel-maker/internal/service/maker"
	"github.com/oshokin/squirrel-maker/internal/version"
)

var (
	// configPath to the settings file.
	configPath string
	// reportPath overrides where the make report goes.
	reportPath string
	// logLevel is the minimum level of log output.
	logLevel string
	// dryRun prints the invocation instead of running it.
	dryRun bool
	// timeout kills Squirrel after the given duration; zero waits forever.
	timeout time.Duration
	// noDelta mirrors --no-delta; applied only when the flag is given.
	noDelta bool
	// overrides collects settings given on the command line.
	overrides = new(config.Config)

	// rootCmd represents the base command for packaging an application.
	rootCmd = &cobra.Command{
		Use:   "squirrel-maker [app-dir]",
		Short: "Build Squirrel Windows installers for a packaged application.",
		Long: `Runs "Squirrel.exe pack" for a built application directory and collects the artifacts.

Settings come from squirrel-maker.yaml (or --config), SQUIRREL_* environment
variables and the flags below, in increasing order of precedence. Package id,
version and authors default to the values in package.json.

Artifacts are written to <make-dir>/clowd.squirrel.windows/<arch>.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if timeout > 0 {
				var cancel context.CancelFunc

				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			if cmd.Flags().Changed("no-delta") {
				overrides.Release.NoDelta = &noDelta
			}

			options := &maker.Options{
				ConfigPath: configPath,
				SourceDir:  args[0],
				Overrides:  overrides,
				ReportPath: reportPath,
				DryRun:     dryRun,
				Output:     cmd.OutOrStdout(),
			}

			return maker.Run(ctx, options)
		},
	}
)

// Execute runs the squirrel-maker CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "squirrel-maker failed", "error", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")

	flags.StringVarP(&configPath, "config", "c", "", "path to settings file (default: ./"+config.DefaultConfigFilename+")")
	flags.StringVar(&reportPath, "report", "", "path of the make report (default: inside the output directory)")
	flags.BoolVar(&dryRun, "dry-run", false, "print the Squirrel invocation without running it")
	flags.DurationVar(&timeout, "timeout", 0, "kill Squirrel if it runs longer than this")

	flags.StringVar(&overrides.Tool, "tool", "", "Squirrel executable (default: "+config.DefaultTool+")")
	flags.StringVarP(&overrides.Arch, "arch", "a", "", "target architecture (default: "+config.DefaultArch+")")
	flags.StringVar(&overrides.MakeDir, "make-dir", "", "base output directory (default: "+config.DefaultMakeDir+")")
	flags.StringVar(&overrides.Manifest, "manifest", "", "path to package.json (default: "+config.DefaultManifest+")")
	flags.StringVar(&overrides.PublishDir, "publish-dir", "", "copy verified artifacts into this folder")

	r := &overrides.Release
	flags.StringVar(&r.PackID, "pack-id", "", "package id (default: package.json name)")
	flags.StringVar(&r.PackVersion, "pack-version", "", "package version (default: package.json version)")
	flags.StringVar(&r.PackDir, "pack-dir", "", "directory to pack (default: app-dir)")
	flags.StringVar(&r.PackTitle, "pack-title", "", "display title (default: package id)")
	flags.StringVar(&r.PackAuthors, "pack-authors", "", "package authors (default: package.json author)")
	flags.BoolVar(&r.IncludePDB, "include-pdb", false, "add *.pdb files to the package")
	flags.StringVar(&r.ReleaseNotes, "release-notes", "", "markdown file with release notes")
	flags.StringVar(&r.SignParams, "sign-params", "", "parameters passed to signtool")
	flags.StringVar(&r.SignTemplate, "sign-template", "", "custom signing command containing "+release.SignTemplatePlaceholder)
	flags.BoolVar(&noDelta, "no-delta", release.DefaultNoDelta, "skip delta package generation")
	flags.StringVar(&r.Framework, "framework", "", "comma-separated runtimes to install, e.g. net6.0-x64,vcredist143-x86")
	flags.StringVar(&r.SplashImage, "splash-image", "", "image shown while installing")
	flags.StringVar(&r.Icon, "icon", "", ".ico for Setup.exe and Update.exe")
	flags.StringVar(&r.AppIcon, "app-icon", "", ".ico for Apps and Features")
	flags.StringVar((*string)(&r.MSI), "msi", "", "build an MSI deployment tool: x86 or x64")
	flags.StringVar(&r.BaseURL, "base-url", "", "base URL prefixed to packages in RELEASES")
	flags.StringVar(&r.AddSearchPath, "add-search-path", "", "extra directory to search for Setup.exe and Update.exe")
	flags.StringVar(&r.DebugSetupExe, "debug-setup-exe", "", "build the bundle with this Setup.exe")
	flags.StringSliceVar(&r.MainExes, "main-exe", nil, "SquirrelAware executable name (repeatable)")

	rootCmd.AddCommand(initCmd, normalizeVersionCmd)
}
