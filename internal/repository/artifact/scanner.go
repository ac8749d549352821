package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ReleasesFilename is the update feed manifest written by Squirrel.
const ReleasesFilename = "RELEASES"

// Kind classifies a discovered artifact.
type Kind string

// Artifact kinds.
const (
	KindReleases Kind = "releases"
	KindPackage  Kind = "package"
	KindSetup    Kind = "setup"
	KindMSI      Kind = "msi"
)

// ErrDiscovery matches every *DiscoveryError via errors.Is.
var ErrDiscovery = errors.New("artifact discovery failed")

// DiscoveryError reports that the release directory could not be listed or inspected.
// It is distinct from an empty Set, which means the directory holds no artifacts.
type DiscoveryError struct {
	// Dir is the directory being scanned.
	Dir string
	// Err is the underlying filesystem error.
	Err error
}

// Error implements error.
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDiscovery, e.Dir, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDiscovery) true for any DiscoveryError.
func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscovery
}

// Artifact is a single installer output.
type Artifact struct {
	// Path is the absolute file path.
	Path string
	// Kind is derived from the file name.
	Kind Kind
}

// Set is the result of one scan. It is sorted by path for stable output,
// but callers should treat it as unordered.
type Set []Artifact

// Paths returns the artifact paths.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s))
	for _, a := range s {
		paths = append(paths, a.Path)
	}

	return paths
}

// OfKind returns the artifacts of kind k.
func (s Set) OfKind(k Kind) Set {
	var filtered Set

	for _, a := range s {
		if a.Kind == k {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

// Classify returns the artifact kind for a file name, or false if it is not an artifact.
func Classify(name string) (Kind, bool) {
	if name == ReleasesFilename {
		return KindReleases, true
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".nupkg":
		return KindPackage, true
	case ".exe":
		return KindSetup, true
	case ".msi":
		return KindMSI, true
	default:
		return "", false
	}
}

// Scan lists the direct entries of dir and returns the regular files that are artifacts.
// Subdirectories are not descended into.
func Scan(dir string) (Set, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, &DiscoveryError{Dir: absDir, Err: err}
	}

	set := make(Set, 0, len(entries))

	for _, entry := range entries {
		kind, ok := Classify(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(absDir, entry.Name())

		// Stat follows symlinks, so a link to a regular file counts.
		info, err := os.Stat(path)
		if err != nil {
			return nil, &DiscoveryError{Dir: absDir, Err: err}
		}

		if !info.Mode().IsRegular() {
			continue
		}

		set = append(set, Artifact{Path: path, Kind: kind})
	}

	slices.SortFunc(set, func(a, b Artifact) int {
		return strings.Compare(a.Path, b.Path)
	})

	return set, nil
}
