package profilestore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile doc: %v", err)
	}
	return path
}

func TestFileSource_ReadsParallelArrays(t *testing.T) {
	path := writeDoc(t, `{"Time":[10,20,30],"Temperature":[100,200,300]}`)
	src := NewFileSource(path, nil)

	times, temps := src.ReadProfile()
	if !reflect.DeepEqual(times, []uint16{10, 20, 30}) {
		t.Fatalf("times = %v", times)
	}
	if !reflect.DeepEqual(temps, []uint16{100, 200, 300}) {
		t.Fatalf("temps = %v", temps)
	}
}

func TestFileSource_UnequalArraysPassedThrough(t *testing.T) {
	// Pairing/bounds policy lives in the profile builder, not here.
	path := writeDoc(t, `{"Time":[10,20],"Temperature":[100]}`)
	src := NewFileSource(path, nil)

	times, temps := src.ReadProfile()
	if len(times) != 2 || len(temps) != 1 {
		t.Fatalf("lengths = %d/%d, want 2/1", len(times), len(temps))
	}
}

func TestFileSource_MissingFileYieldsEmptySequences(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), nil)
	times, temps := src.ReadProfile()
	if len(times) != 0 || len(temps) != 0 {
		t.Fatalf("expected empty sequences, got %v / %v", times, temps)
	}
}

func TestFileSource_MalformedDocumentYieldsEmptySequences(t *testing.T) {
	path := writeDoc(t, `{"Time":[10,`)
	src := NewFileSource(path, nil)
	times, temps := src.ReadProfile()
	if len(times) != 0 || len(temps) != 0 {
		t.Fatalf("expected empty sequences, got %v / %v", times, temps)
	}
}
