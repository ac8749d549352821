package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// DefaultFilename is the report file name inside the release directory.
// Its extension keeps it out of the artifact scan.
const DefaultFilename = "squirrel-make-report.json"

// DefaultFilePermissions is used when writing the report.
const DefaultFilePermissions = 0o644

// ErrNotFound is returned when the report file does not exist yet.
var ErrNotFound = errors.New("report not found")

// Artifact is one reported installer file.
type Artifact struct {
	Path     string
	Kind     string
	Checksum string
}

// Report describes one make run.
type Report struct {
	// Timestamp is when the run finished.
	Timestamp time.Time
	PackID    string
	// PackVersion is the normalized package version.
	PackVersion string
	Arch        string
	ReleaseDir  string
	// Command is the tool followed by its arguments.
	Command  []string
	ExitCode int
	// Duration is how long the tool ran.
	Duration  time.Duration
	Artifacts []Artifact
	// Published lists the copies made in the publish directory, if any.
	Published []string
}

// Repository defines persistence operations for make reports.
type Repository interface {
	Load(ctx context.Context) (*Report, error)
	Save(ctx context.Context, report *Report) error
}

// FileRepository persists a Report to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the report.
	path string
	// mu protects concurrent access to the report file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the report file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the report from disk.
func (r *FileRepository) Load(_ context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read report file: %w", err)
	}

	var doc structpb.Struct
	if err = protojson.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}

	return fromProto(&doc)
}

// Save writes the report to disk.
func (r *FileRepository) Save(_ context.Context, report *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := toProto(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		EmitUnpopulated: true,
	}

	data, err := marshalOptions.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err = os.WriteFile(r.path, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	return nil
}

// toProto converts a Report into a protobuf Struct.
func toProto(report *Report) (*structpb.Struct, error) {
	artifacts := make([]any, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		artifacts = append(artifacts, map[string]any{
			"path":     a.Path,
			"kind":     a.Kind,
			"checksum": a.Checksum,
		})
	}

	return structpb.NewStruct(map[string]any{
		"timestamp":    report.Timestamp.UTC().Format(time.RFC3339Nano),
		"pack_id":      report.PackID,
		"pack_version": report.PackVersion,
		"arch":         report.Arch,
		"release_dir":  report.ReleaseDir,
		"command":      stringsToList(report.Command),
		"exit_code":    report.ExitCode,
		"duration":     report.Duration.String(),
		"artifacts":    artifacts,
		"published":    stringsToList(report.Published),
	})
}

// fromProto converts a protobuf Struct back into a Report.
func fromProto(doc *structpb.Struct) (*Report, error) {
	fields := doc.GetFields()

	report := &Report{
		PackID:      fields["pack_id"].GetStringValue(),
		PackVersion: fields["pack_version"].GetStringValue(),
		Arch:        fields["arch"].GetStringValue(),
		ReleaseDir:  fields["release_dir"].GetStringValue(),
		Command:     listToStrings(fields["command"].GetListValue()),
		ExitCode:    int(fields["exit_code"].GetNumberValue()),
		Published:   listToStrings(fields["published"].GetListValue()),
	}

	if ts := fields["timestamp"].GetStringValue(); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("decode report timestamp: %w", err)
		}

		report.Timestamp = parsed
	}

	if d := fields["duration"].GetStringValue(); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("decode report duration: %w", err)
		}

		report.Duration = parsed
	}

	for _, v := range fields["artifacts"].GetListValue().GetValues() {
		a := v.GetStructValue().GetFields()
		report.Artifacts = append(report.Artifacts, Artifact{
			Path:     a["path"].GetStringValue(),
			Kind:     a["kind"].GetStringValue(),
			Checksum: a["checksum"].GetStringValue(),
		})
	}

	return report, nil
}

func stringsToList(values []string) []any {
	list := make([]any, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}

	return list
}

func listToStrings(list *structpb.ListValue) []string {
	values := list.GetValues()
	if len(values) == 0 {
		return nil
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, v.GetStringValue())
	}

	return result
}
