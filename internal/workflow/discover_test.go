package workflow

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsMediaFile(t *testing.T) {
	accepted := []string{"a.mp4", "b.MOV", "c.mkv", "d.webm", "e.3gp", "f.ts", "g.mpeg"}
	for _, name := range accepted {
		if !IsMediaFile(name) {
			t.Errorf("IsMediaFile(%q) = false, want true", name)
		}
	}
	rejected := []string{"a.txt", "b.mp4.tmp", "c", "d.srt", "e.jpg"}
	for _, name := range rejected {
		if IsMediaFile(name) {
			t.Errorf("IsMediaFile(%q) = true, want false", name)
		}
	}
}

func TestDiscoverTopLevel(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.mov"))
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden.mp4"))
	touch(t, filepath.Join(root, "nested", "c.avi"))

	files, err := Discover(root, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "a.mp4"),
		filepath.Join(root, "b.mov"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestDiscoverRecursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "nested", "c.avi"))
	touch(t, filepath.Join(root, ".cache", "d.mp4"))

	files, err := Discover(root, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "a.mp4"),
		filepath.Join(root, "nested", "c.avi"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestDiscoverFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	touch(t, filepath.Join(outside, "real.mp4"))

	link := filepath.Join(root, "linked.mp4")
	if err := os.Symlink(filepath.Join(outside, "real.mp4"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	broken := filepath.Join(root, "broken.mp4")
	if err := os.Symlink(filepath.Join(outside, "gone.mp4"), broken); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(root, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{link}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}
