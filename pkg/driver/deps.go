package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ModulesDir is where fetched dependencies are checked out, relative to
// the project root.
const ModulesDir = "qte_modules"

// Installer fetches the manifest's git dependencies into qte_modules/ and
// pins the resolved commits in the lockfile.
type Installer struct {
	manifest *Manifest
}

// NewInstaller prepares an installer for the manifest's dependencies.
func NewInstaller(manifest *Manifest) *Installer {
	return &Installer{manifest: manifest}
}

// Install ensures every declared dependency has a checkout matching its
// pin. It reports whether the lockfile changed plus a log line per
// dependency.
func (ins *Installer) Install(lock *Lockfile) (bool, []string, error) {
	names := make([]string, 0, len(ins.manifest.Deps))
	for name := range ins.manifest.Deps {
		names = append(names, name)
	}
	sort.Strings(names)

	changed := false
	var logs []string
	for _, name := range names {
		spec := ins.manifest.Deps[name]
		entry, log, err := ins.ensure(name, spec, lock.Find(name))
		if err != nil {
			return changed, logs, fmt.Errorf("dependency %q: %w", name, err)
		}
		logs = append(logs, log)
		if lock.Put(entry) {
			changed = true
		}
	}
	return changed, logs, nil
}

// ensure clones or reuses the dependency checkout and returns its lock
// entry.
func (ins *Installer) ensure(name string, spec *DependencySpec, locked *LockedPackage) (*LockedPackage, string, error) {
	dir := filepath.Join(ins.manifest.Root(), ModulesDir, name)
	pin := dependencyPin(spec)

	if locked != nil && locked.Pin == pin && locked.Source == spec.Git {
		if _, err := os.Stat(dir); err == nil {
			return locked, fmt.Sprintf("%s: up to date (%s)", name, shortCommit(locked.Commit)), nil
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, "", err
	}

	repo, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:               spec.Git,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		return nil, "", fmt.Errorf("git clone %s: %w", spec.Git, err)
	}

	hash, err := resolveRevision(repo, spec)
	if err != nil {
		return nil, "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return nil, "", fmt.Errorf("checkout %s: %w", hash, err)
	}

	entry := &LockedPackage{
		Name:   name,
		Source: spec.Git,
		Pin:    pin,
		Commit: hash.String(),
	}
	return entry, fmt.Sprintf("%s: fetched %s (%s)", name, pin, shortCommit(entry.Commit)), nil
}

func resolveRevision(repo *git.Repository, spec *DependencySpec) (*plumbing.Hash, error) {
	var revision plumbing.Revision
	switch {
	case strings.TrimSpace(spec.Rev) != "":
		revision = plumbing.Revision(spec.Rev)
	case strings.TrimSpace(spec.Tag) != "":
		revision = plumbing.Revision("refs/tags/" + spec.Tag)
	case strings.TrimSpace(spec.Branch) != "":
		revision = plumbing.Revision("refs/heads/" + spec.Branch)
	default:
		revision = plumbing.Revision("HEAD")
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	return hash, nil
}

// dependencyPin is the stable descriptor of what the manifest asks for.
func dependencyPin(spec *DependencySpec) string {
	switch {
	case strings.TrimSpace(spec.Rev) != "":
		return "rev:" + spec.Rev
	case strings.TrimSpace(spec.Tag) != "":
		return "tag:" + spec.Tag
	case strings.TrimSpace(spec.Branch) != "":
		return "branch:" + spec.Branch
	default:
		return "HEAD"
	}
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
