package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparvlang/sparv/internal/manifest"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sparv.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `name: demo
version: 1.2.3
entry: main.sparv
args:
  - "--fast"
  - input.txt
`)

	m, err := manifest.Load(filepath.Join(dir, "main.sparv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected a manifest")
	}
	if m.Name != "demo" || m.Version != "1.2.3" || m.Entry != "main.sparv" {
		t.Errorf("unexpected manifest %+v", m)
	}
	if len(m.Args) != 2 || m.Args[0] != "--fast" || m.Args[1] != "input.txt" {
		t.Errorf("unexpected args %v", m.Args)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	m, err := manifest.Load(filepath.Join(t.TempDir(), "main.sparv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil manifest, got %+v", m)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name: [unclosed")

	if _, err := manifest.Load(filepath.Join(dir, "main.sparv")); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}
