package world_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1homsi/goflow/internal/world"
)

const sampleProgram = `{
  "entry": "Main.main",
  "classes": [
    {
      "name": "Main",
      "methods": [
        {
          "name": "main",
          "static": true,
          "stmts": [
            {"op": "new", "lhs": {"name": "x", "type": {"name": "Main", "reference": true}}, "type": {"name": "Main", "reference": true}},
            {"op": "return", "vars": []}
          ],
          "edges": [
            {"from": 0, "to": 1}
          ]
        }
      ]
    }
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.json")
	if err := os.WriteFile(path, []byte(sampleProgram), 0o644); err != nil {
		t.Fatalf("write sample program: %v", err)
	}
	return path
}

func TestLoadProgramJSON(t *testing.T) {
	path := writeSample(t)
	w, err := world.LoadProgramJSON(path)
	if err != nil {
		t.Fatalf("LoadProgramJSON: %v", err)
	}
	main := w.MainMethod()
	if main == nil {
		t.Fatal("MainMethod is nil")
	}
	if main.Class != "Main" || main.Name != "main" {
		t.Fatalf("main = %s.%s, want Main.main", main.Class, main.Name)
	}
	if len(main.Stmts) != 2 {
		t.Fatalf("len(Stmts) = %d, want 2", len(main.Stmts))
	}
	if len(main.Successors(0)) != 1 {
		t.Fatalf("len(Successors(0)) = %d, want 1", len(main.Successors(0)))
	}
	if w.ClassHierarchy() == nil || w.TypeSystem() == nil {
		t.Fatal("hierarchy/types not populated")
	}
}

func TestLoadProgramJSONMissingEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"entry":"Main.nope","classes":[{"name":"Main","methods":[]}]}`), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	if _, err := world.LoadProgramJSON(path); err == nil {
		t.Fatal("expected an error for an undeclared entry method")
	}
}

func TestLoadProgramJSONMissingFile(t *testing.T) {
	if _, err := world.LoadProgramJSON("/no/such/path.json"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
