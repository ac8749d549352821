// Package checksum hashes release artifacts.
package checksum

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

// DefaultFunction is used to calculate artifact hashes.
const DefaultFunction crypto.Hash = crypto.SHA512

var errHashUnavailable = errors.New("hash function unavailable")

// File returns the DefaultFunction digest of the file at path.
func File(path string) ([]byte, error) {
	if !DefaultFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	hasher := DefaultFunction.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return nil, fmt.Errorf("calculate checksum of %s: %w", path, err)
	}

	return hasher.Sum(nil), nil
}

// Encode renders a digest the way it is stored in reports.
func Encode(sum []byte) string {
	return base64.StdEncoding.EncodeToString(sum)
}

// Decode parses a digest produced by Encode.
func Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// Files hashes every path and returns path -> encoded digest.
func Files(paths []string) (map[string]string, error) {
	sums := make(map[string]string, len(paths))

	for _, path := range paths {
		sum, err := File(path)
		if err != nil {
			return nil, err
		}

		sums[path] = Encode(sum)
	}

	return sums, nil
}
