package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// definitionDirSink writes exported definitions as indented JSON files,
// {id}-summary.json and {id}-details.json.
type definitionDirSink struct {
	dir string
}

func (s *definitionDirSink) WriteSummary(id int, name string, summary json.RawMessage) error {
	return writeJSONFile(filepath.Join(s.dir, fmt.Sprintf("%d-summary.json", id)), summary)
}

func (s *definitionDirSink) WriteDetail(id int, name string, detail json.RawMessage) error {
	return writeJSONFile(filepath.Join(s.dir, fmt.Sprintf("%d-details.json", id)), detail)
}

func writeJSONFile(path string, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// contentDirSink creates one {id}-{name}.zip file per exported report.
type contentDirSink struct {
	dir string
}

func (s *contentDirSink) Create(id int, name string) (io.WriteCloser, error) {
	return os.Create(filepath.Join(s.dir, fmt.Sprintf("%d-%s.zip", id, name)))
}

// definitionDirSource yields every *.json file under a directory,
// recursively.
type definitionDirSource struct {
	dir string
}

func (s *definitionDirSource) Each(fn func(origin string, definition json.RawMessage) error) error {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("path is not a directory or doesn't exist: %s", s.dir)
	}
	return filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, json.RawMessage(data))
	})
}
