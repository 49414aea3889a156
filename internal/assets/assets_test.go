package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/hologram/internal/obj"
)

func TestLoadSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.WriteFile(filepath.Join(second, "a.obj"), []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(second, "b.obj"), []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(first, "a.obj"), []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(first, second)

	tests := []struct {
		name string
		want string
	}{
		{"a.obj", "first"},
		{"b.obj", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := m.Load(tt.name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Load(%q) = %q, want %q", tt.name, data, tt.want)
			}
		})
	}
}

func TestLoadAbsolute(t *testing.T) {
	p := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(p, []byte("abs"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := NewManager().Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "abs" {
		t.Errorf("Load = %q, want abs", data)
	}

	if _, err := NewManager().Load(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing absolute path")
	}
}

func TestLoadDefaultModel(t *testing.T) {
	m := NewManager(t.TempDir())
	data, err := m.Load(DefaultModel)
	if err != nil {
		t.Fatalf("Load(%s): %v", DefaultModel, err)
	}

	mesh, err := obj.ParseBytes(data)
	if err != nil {
		t.Fatalf("embedded cube does not parse: %v", err)
	}
	if got := mesh.Triangles(); got != 12 {
		t.Errorf("cube triangles = %d, want 12", got)
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Load("nope.obj")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load error = %v, want ErrNotFound", err)
	}
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.obj")
	if err := os.WriteFile(p, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir)
	if _, err := m.Load("c.obj"); err != nil {
		t.Fatal(err)
	}

	// Served from cache even after the file changes.
	if err := os.WriteFile(p, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := m.Load("c.obj")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Errorf("Load = %q, want cached v1", data)
	}
	if hits, misses := m.cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits %d misses, want 1/1", hits, misses)
	}

	m.Close()
	data, _ = m.Load("c.obj")
	if string(data) != "v2" {
		t.Errorf("Load after Close = %q, want v2", data)
	}
}

func TestAddDir(t *testing.T) {
	m := NewManager()
	if err := m.AddDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing dir")
	}

	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.AddDir(f); err == nil {
		t.Error("expected error for regular file")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	if _, err := m.Load("x.png"); err != nil {
		t.Errorf("Load after AddDir: %v", err)
	}
}
