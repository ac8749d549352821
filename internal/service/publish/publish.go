package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/squirrel-maker/internal/logger"
	"github.com/oshokin/squirrel-maker/internal/repository/artifact"
	"github.com/oshokin/squirrel-maker/internal/service/checksum"
)

const (
	// DefaultFileMode is applied to published files.
	DefaultFileMode os.FileMode = 0o644

	// DefaultDirMode is used when the feed folder does not exist yet.
	DefaultDirMode os.FileMode = 0o755
)

var errNoChecksum = errors.New("checksum missing for artifact")

// Publish copies every artifact of set into dir, verifying it against sums.
// sums maps artifact paths to checksum.Encode digests. It returns the published paths.
func Publish(ctx context.Context, set artifact.Set, sums map[string]string, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return nil, fmt.Errorf("create publish directory: %w", err)
	}

	published := make([]string, 0, len(set))

	for _, a := range set {
		target, err := publishFile(ctx, a, sums, dir)
		if err != nil {
			return published, fmt.Errorf("publish %s: %w", filepath.Base(a.Path), err)
		}

		published = append(published, target)
	}

	return published, nil
}

func publishFile(ctx context.Context, a artifact.Artifact, sums map[string]string, dir string) (string, error) {
	encoded, ok := sums[a.Path]
	if !ok {
		return "", errNoChecksum
	}

	sum, err := checksum.Decode(encoded)
	if err != nil {
		return "", fmt.Errorf("decode checksum: %w", err)
	}

	source, err := os.Open(a.Path)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = source.Close()
	}()

	target := filepath.Join(dir, filepath.Base(a.Path))

	// go-update replaces an existing file, so make sure there is one.
	if _, err = os.Stat(target); errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(target, nil, DefaultFileMode); err != nil {
			return "", err
		}
	}

	logger.DebugKV(ctx, "Publishing artifact", "kind", a.Kind, "target", target)

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: DefaultFileMode,
		Checksum:   sum,
		Hash:       checksum.DefaultFunction,
	}

	if err = goupdate.Apply(source, options); err != nil {
		return "", err
	}

	oldFile := filepath.Join(dir, "."+filepath.Base(a.Path)+".old")
	if _, err = os.Stat(oldFile); err == nil {
		_ = os.Remove(oldFile)
	}

	return target, nil
}
