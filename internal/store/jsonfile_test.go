package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	in := map[string]int{"a": 1, "b": 2}
	if err := SaveJSON(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := map[string]int{}
	if err := LoadJSON(path, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Errorf("got %v", out)
	}
}

func TestLoadJSON_MissingFileIsZeroState(t *testing.T) {
	out := map[string]int{"seed": 9}
	if err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), &out); err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if out["seed"] != 9 {
		t.Error("value must stay untouched for a missing file")
	}
}

func TestLoadJSON_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := map[string]int{}
	if err := LoadJSON(path, &out); err == nil {
		t.Error("expected decode error")
	}
}

func TestSaveJSON_ReplacesAndDropsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := SaveJSON(path, map[string]int{"v": 1}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveJSON(path, map[string]int{"v": 2}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out := map[string]int{}
	if err := LoadJSON(path, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out["v"] != 2 {
		t.Errorf("got %v, want the second write", out)
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Error("backup must be removed after a successful write")
	}
}

func TestSaveJSON_RestoresBackupOnFailedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := SaveJSON(path, map[string]int{"v": 1}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// A value that cannot be marshaled makes the write fail after the
	// previous file was moved aside.
	if err := SaveJSON(path, func() {}); err == nil {
		t.Fatal("expected marshal error")
	}

	out := map[string]int{}
	if err := LoadJSON(path, &out); err != nil {
		t.Fatalf("previous state must survive a failed write: %v", err)
	}
	if out["v"] != 1 {
		t.Errorf("got %v, want the original state", out)
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Error("backup must be moved back, not left behind")
	}
}
