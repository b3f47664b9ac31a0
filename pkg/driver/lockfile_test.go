package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LockfileName)

	lock := NewLockfile("demo", "quetite 0.1.0")
	lock.Put(&LockedPackage{
		Name:   "colorkit",
		Source: "https://example.com/colorkit.git",
		Pin:    "tag:v1.0.0",
		Commit: "abcdef1234567890",
	})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile returned error: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile returned error: %v", err)
	}
	if loaded.Root != "demo" {
		t.Fatalf("root = %q", loaded.Root)
	}
	pkg := loaded.Find("colorkit")
	if pkg == nil || pkg.Commit != "abcdef1234567890" || pkg.Pin != "tag:v1.0.0" {
		t.Fatalf("unexpected package %+v", pkg)
	}
}

func TestLockfilePutReportsChange(t *testing.T) {
	lock := NewLockfile("demo", "tool")
	entry := &LockedPackage{Name: "a", Pin: "HEAD", Commit: "1"}
	if !lock.Put(entry) {
		t.Fatalf("first put must report a change")
	}
	same := *entry
	if lock.Put(&same) {
		t.Fatalf("identical put must not report a change")
	}
	updated := *entry
	updated.Commit = "2"
	if !lock.Put(&updated) {
		t.Fatalf("updated commit must report a change")
	}
}

func TestLockfilePackagesSorted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LockfileName)
	lock := NewLockfile("demo", "tool")
	lock.Put(&LockedPackage{Name: "zlib"})
	lock.Put(&LockedPackage{Name: "alib"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile returned error: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile returned error: %v", err)
	}
	if loaded.Packages[0].Name != "alib" || loaded.Packages[1].Name != "zlib" {
		t.Fatalf("packages not sorted: %+v", loaded.Packages)
	}
}

func TestLoadLockfileMissing(t *testing.T) {
	_, err := LoadLockfile(filepath.Join(t.TempDir(), LockfileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
