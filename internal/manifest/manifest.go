package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/squirrel-maker/internal/domain/release"
)

// DefaultFilename is the manifest file looked up in the application directory.
const DefaultFilename = "package.json"

var errUnsupportedAuthor = errors.New("author must be a string or an object with a name")

// packageJSON mirrors the package.json fields the maker reads.
type packageJSON struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Author  json.RawMessage `json:"author"`
}

// authorObject is the {"name", "email", "url"} form of the author field.
type authorObject struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Load reads and decodes the manifest at path.
// A directory path is resolved to <path>/package.json.
func Load(path string) (*release.Manifest, error) {
	path = filepath.Clean(path)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return Parse(contents)
}

// Parse decodes package.json contents.
func Parse(contents []byte) (*release.Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(contents, &pkg); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	author, err := parseAuthor(pkg.Author)
	if err != nil {
		return nil, err
	}

	return &release.Manifest{
		Name:    pkg.Name,
		Version: pkg.Version,
		Author:  author,
	}, nil
}

// parseAuthor accepts "Name <email> (url)" strings and {"name": ...} objects.
// Strings are kept verbatim.
func parseAuthor(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}

	var author string
	if err := json.Unmarshal(raw, &author); err == nil {
		return author, nil
	}

	var obj authorObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("decode manifest author: %w", errUnsupportedAuthor)
	}

	return obj.Name, nil
}
