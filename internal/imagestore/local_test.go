package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalDirListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.png", []byte("x"))
	writeFile(t, dir, "a.JPG", []byte("x"))
	writeFile(t, dir, "notes.txt", []byte("x"))
	writeFile(t, dir, "c.jpeg", []byte("x"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := NewLocalDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	refs, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(refs) != 3 {
		t.Fatalf("got %d refs, want 3", len(refs))
	}
	want := []string{"a.JPG", "b.png", "c.jpeg"}
	for i, name := range want {
		if refs[i].Filename() != name {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i].Filename(), name)
		}
	}
}

func TestLocalDirFetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img.png", []byte("png bytes"))

	store, err := NewLocalDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	refs, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	data, err := store.Fetch(context.Background(), refs[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png bytes" {
		t.Errorf("fetched %q", data)
	}
}

func TestNewLocalDirMissing(t *testing.T) {
	if _, err := NewLocalDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewLocalDirNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.png", []byte("x"))
	if _, err := NewLocalDir(filepath.Join(dir, "f.png")); err == nil {
		t.Fatal("expected error for non-directory")
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.png", true},
		{"a.gif", true},
		{"a.bmp", true},
		{"a.TIFF", true},
		{"a.txt", false},
		{"a.webp", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.name); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMIMEType(t *testing.T) {
	mt, err := MIMEType("diagram.JPG")
	if err != nil {
		t.Fatal(err)
	}
	if mt != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", mt)
	}

	if _, err := MIMEType("file.pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
