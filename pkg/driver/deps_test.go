package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initScriptRepo builds a local git repository holding one Quetite script,
// so the installer can clone without touching the network.
func initScriptRepo(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib.qte"), []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add("lib.qte"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err = worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return dir
}

func TestInstallerClonesAndPins(t *testing.T) {
	repoDir := initScriptRepo(t, "var libVersion = 1\n")

	projectDir := t.TempDir()
	manifestPath := filepath.Join(projectDir, ManifestName)
	writeFile(t, manifestPath, "name: demo\ndeps:\n  scripts:\n    git: "+repoDir+"\n")
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}

	lock := NewLockfile(manifest.Name, "quetite-test")
	installer := NewInstaller(manifest)
	changed, logs, err := installer.Install(lock)
	if err != nil {
		t.Fatalf("Install returned error: %v", err)
	}
	if !changed || len(logs) != 1 {
		t.Fatalf("unexpected install result: changed=%v logs=%v", changed, logs)
	}

	checkout := filepath.Join(projectDir, ModulesDir, "scripts", "lib.qte")
	if _, err := os.Stat(checkout); err != nil {
		t.Fatalf("expected checkout at %s: %v", checkout, err)
	}
	pkg := lock.Find("scripts")
	if pkg == nil || pkg.Commit == "" || pkg.Pin != "HEAD" {
		t.Fatalf("unexpected lock entry %+v", pkg)
	}
}

func TestInstallerReusesExistingCheckout(t *testing.T) {
	repoDir := initScriptRepo(t, "var libVersion = 2\n")

	projectDir := t.TempDir()
	manifestPath := filepath.Join(projectDir, ManifestName)
	writeFile(t, manifestPath, "name: demo\ndeps:\n  scripts:\n    git: "+repoDir+"\n")
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}

	lock := NewLockfile(manifest.Name, "quetite-test")
	installer := NewInstaller(manifest)
	if _, _, err := installer.Install(lock); err != nil {
		t.Fatalf("first install: %v", err)
	}
	changed, _, err := installer.Install(lock)
	if err != nil {
		t.Fatalf("second install: %v", err)
	}
	if changed {
		t.Fatalf("second install must be a no-op")
	}
}

func TestDependencyPinDescriptors(t *testing.T) {
	cases := []struct {
		spec DependencySpec
		want string
	}{
		{DependencySpec{Rev: "abc"}, "rev:abc"},
		{DependencySpec{Tag: "v1"}, "tag:v1"},
		{DependencySpec{Branch: "main"}, "branch:main"},
		{DependencySpec{}, "HEAD"},
	}
	for _, tc := range cases {
		if got := dependencyPin(&tc.spec); got != tc.want {
			t.Fatalf("dependencyPin(%+v) = %q, want %q", tc.spec, got, tc.want)
		}
	}
}
