package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir(), ".md")
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempDir(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestReadMissingIsNotExist(t *testing.T) {
	s := tempDir(t)
	_, err := s.Read("ghost.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
	if err := s.Delete("del.md"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("second delete err = %v, want os.ErrNotExist", err)
	}
}

func TestListFiltersExtensionAndSorts(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("b.md", []byte("b"))
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("readme.txt", []byte("not md"))
	if err := os.Mkdir(filepath.Join(s.Root(), "sub.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Name != "a.md" || items[1].Name != "b.md" {
		t.Errorf("order = %q, %q", items[0].Name, items[1].Name)
	}
	if items[0].Checksum == "" {
		t.Error("checksum should be set")
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempDir(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
		"sub/inner.md",
		"..",
		"",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("atomic.md", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.md", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".portal-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestWriteFileAtomicCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "doc.json")
	if err := WriteFileAtomic(path, []byte(`{}`)); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("content = %q", got)
	}
}

func TestNewFS_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "projects")
	if _, err := NewFS(dir, ".md"); err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "portal-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name(), ".md")
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
