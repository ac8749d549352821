package squirrel

import (
	"strings"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
)

// PackCommand is the Squirrel sub-command; always the first argument.
const PackCommand = "pack"

// Squirrel command-line flags.
const (
	flagReleaseDir    = "--releaseDir"
	flagPackID        = "--packId"
	flagPackVersion   = "--packVersion"
	flagPackDir       = "--packDir"
	flagPackTitle     = "--packTitle"
	flagPackAuthors   = "--packAuthors"
	flagIncludePDB    = "--includePdb"
	flagReleaseNotes  = "--releaseNotes"
	flagSignParams    = "--signParams"
	flagSignTemplate  = "--signTemplate"
	flagNoDelta       = "--noDelta"
	flagFramework     = "--framework"
	flagSplashImage   = "--splashImage"
	flagIcon          = "--icon"
	flagAppIcon       = "--appIcon"
	flagMSI           = "--msi"
	flagBaseURL       = "--baseUrl"
	flagAddSearchPath = "--addSearchPath"
	flagDebugSetupExe = "--debugSetupExe"
	flagMainExe       = "--mainExe"
)

// Compile builds the argument list for "Squirrel.exe pack".
//
// cfg must already be resolved (see release.Config.Resolve). The six
// identity pairs are always present; every other flag appears only when its
// field is non-empty or true. Boolean options contribute the flag alone.
func Compile(cfg *release.Config, releaseDir string) []string {
	args := make([]string, 0, 32)

	args = append(args,
		PackCommand,
		flagReleaseDir, releaseDir,
		flagPackID, cfg.PackID,
		flagPackVersion, cfg.PackVersion,
		flagPackDir, cfg.PackDir,
		flagPackTitle, cfg.PackTitle,
		flagPackAuthors, cfg.PackAuthors,
	)

	args = appendFlag(args, flagIncludePDB, cfg.IncludePDB)
	args = appendValue(args, flagReleaseNotes, cfg.ReleaseNotes)
	args = appendValue(args, flagSignParams, cfg.SignParams)
	args = appendValue(args, flagSignTemplate, cfg.SignTemplate)
	args = appendFlag(args, flagNoDelta, cfg.SkipDelta())
	args = appendValue(args, flagFramework, cfg.Framework)
	args = appendValue(args, flagSplashImage, cfg.SplashImage)
	args = appendValue(args, flagIcon, cfg.Icon)
	args = appendValue(args, flagAppIcon, cfg.AppIcon)
	args = appendValue(args, flagMSI, string(cfg.MSI))

	args = appendValue(args, flagBaseURL, cfg.BaseURL)
	args = appendValue(args, flagAddSearchPath, cfg.AddSearchPath)
	args = appendValue(args, flagDebugSetupExe, cfg.DebugSetupExe)

	for _, exe := range cfg.MainExes {
		args = appendValue(args, flagMainExe, exe)
	}

	return args
}

func appendFlag(args []string, flag string, enabled bool) []string {
	if !enabled {
		return args
	}

	return append(args, flag)
}

func appendValue(args []string, flag, value string) []string {
	if value == "" {
		return args
	}

	return append(args, flag, value)
}

// CommandLine renders tool and args as a single line for logs and dry runs.
// Arguments that are empty or contain whitespace or quotes are double-quoted.
func CommandLine(tool string, args []string) string {
	var builder strings.Builder

	builder.WriteString(quoteArg(tool))

	for _, arg := range args {
		builder.WriteByte(' ')
		builder.WriteString(quoteArg(arg))
	}

	return builder.String()
}

func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"") {
		return arg
	}

	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
