// Package profilestore reads the on-disk firing profile document: a
// JSON object with two parallel numeric arrays, "Time" (seconds per
// phase) and "Temperature" (target °C per phase), paired by index.
package profilestore

import (
	"encoding/json"
	"os"

	"controlling_kiln/internal/logger"
)

// document mirrors the profile file layout.
type document struct {
	Time        []uint16 `json:"Time"`
	Temperature []uint16 `json:"Temperature"`
}

// FileSource implements control.ConfigSource against a JSON file.
type FileSource struct {
	path string
	log  *logger.Logger
}

func NewFileSource(path string, log *logger.Logger) *FileSource {
	return &FileSource{path: path, log: log}
}

// ReadProfile returns the paired sequences from the document. Any read
// or parse failure degrades to empty sequences — the caller builds a
// count=0 profile and every run becomes a no-op. No partial-failure
// detail is propagated beyond the log line.
func (s *FileSource) ReadProfile() (times, temps []uint16) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("profile_document_unreadable", "path", s.path, "err", err)
		}
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		if s.log != nil {
			s.log.Warnw("profile_document_malformed", "path", s.path, "err", err)
		}
		return nil, nil
	}
	return doc.Time, doc.Temperature
}
