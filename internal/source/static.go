package source

import (
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/formnav/internal/core"
)

// StaticSource serves a fixed collection.
type StaticSource struct {
	records []core.Record
}

// NewStaticSource copies records into a new source.
func NewStaticSource(records []core.Record) *StaticSource {
	cp := make([]core.Record, len(records))
	copy(cp, records)
	return &StaticSource{records: cp}
}

// Name implements Named.
func (s *StaticSource) Name() string { return "static" }

// Fetch returns a copy of the collection.
func (s *StaticSource) Fetch(context.Context) ([]core.Record, error) {
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// FileSource reads a JSON array of records from disk on every fetch.
type FileSource struct {
	path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Named.
func (s *FileSource) Name() string { return "file" }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	defer f.Close()

	body, err := readPayload(f, maxPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return DecodeRecords(body)
}
