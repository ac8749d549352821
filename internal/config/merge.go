package config

import (
	"slices"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
)

// Merge returns a copy of base with every non-zero field of override applied on top.
// Booleans can only be switched on, except NoDelta which is applied whenever it is set.
func Merge(base, override *Config) *Config {
	merged := new(Config)
	if base != nil {
		*merged = *base
		merged.Release = *base.Release.Clone()
	}

	if override == nil {
		return merged
	}

	setString(&merged.Tool, override.Tool)
	setString(&merged.Arch, override.Arch)
	setString(&merged.MakeDir, override.MakeDir)
	setString(&merged.Manifest, override.Manifest)
	setString(&merged.PublishDir, override.PublishDir)

	mergeRelease(&merged.Release, &override.Release)

	return merged
}

func mergeRelease(dst, src *release.Config) {
	setString(&dst.PackID, src.PackID)
	setString(&dst.PackVersion, src.PackVersion)
	setString(&dst.PackDir, src.PackDir)
	setString(&dst.PackTitle, src.PackTitle)
	setString(&dst.PackAuthors, src.PackAuthors)
	setString(&dst.ReleaseNotes, src.ReleaseNotes)
	setString(&dst.SignParams, src.SignParams)
	setString(&dst.SignTemplate, src.SignTemplate)
	setString(&dst.Framework, src.Framework)
	setString(&dst.SplashImage, src.SplashImage)
	setString(&dst.Icon, src.Icon)
	setString(&dst.AppIcon, src.AppIcon)
	setString(&dst.BaseURL, src.BaseURL)
	setString(&dst.AddSearchPath, src.AddSearchPath)
	setString(&dst.DebugSetupExe, src.DebugSetupExe)

	if src.MSI != "" {
		dst.MSI = src.MSI
	}

	if src.IncludePDB {
		dst.IncludePDB = true
	}

	if src.NoDelta != nil {
		noDelta := *src.NoDelta
		dst.NoDelta = &noDelta
	}

	if len(src.MainExes) > 0 {
		dst.MainExes = slices.Clone(src.MainExes)
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
