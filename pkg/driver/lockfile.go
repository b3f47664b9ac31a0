package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LockfileName sits next to the manifest and records resolved revisions.
const LockfileName = "quetite.lock"

// Lockfile models the quetite.lock contents.
type Lockfile struct {
	Path      string
	Root      string
	Generated string
	Tool      string
	Packages  []*LockedPackage
}

// LockedPackage captures a single resolved dependency.
type LockedPackage struct {
	Name   string
	Source string
	Pin    string
	Commit string
}

type lockfileDisk struct {
	Root      string              `yaml:"root"`
	Generated string              `yaml:"generated"`
	Tool      string              `yaml:"tool"`
	Packages  []lockedPackageDisk `yaml:"packages"`
}

type lockedPackageDisk struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Pin    string `yaml:"pin"`
	Commit string `yaml:"commit"`
}

// NewLockfile constructs a lockfile seeded for the given project.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{
		Root:      strings.TrimSpace(root),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
	}
}

// LoadLockfile parses quetite.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := &Lockfile{
		Path:      abs,
		Root:      raw.Root,
		Generated: raw.Generated,
		Tool:      raw.Tool,
	}
	for _, pkg := range raw.Packages {
		lock.Packages = append(lock.Packages, &LockedPackage{
			Name:   pkg.Name,
			Source: pkg.Source,
			Pin:    pkg.Pin,
			Commit: pkg.Commit,
		})
	}
	lock.sortPackages()
	return lock, nil
}

// WriteLockfile serialises the lockfile back to disk, refreshing the
// generation timestamp.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	lock.sortPackages()
	lock.Generated = time.Now().UTC().Format(time.RFC3339)

	raw := lockfileDisk{
		Root:      lock.Root,
		Generated: lock.Generated,
		Tool:      lock.Tool,
	}
	for _, pkg := range lock.Packages {
		raw.Packages = append(raw.Packages, lockedPackageDisk{
			Name:   pkg.Name,
			Source: pkg.Source,
			Pin:    pkg.Pin,
			Commit: pkg.Commit,
		})
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("lockfile: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	lock.Path = path
	return nil
}

// Find returns the locked entry for a dependency, if any.
func (l *Lockfile) Find(name string) *LockedPackage {
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// Put inserts or replaces a locked entry, reporting whether anything
// changed.
func (l *Lockfile) Put(entry *LockedPackage) bool {
	for idx, pkg := range l.Packages {
		if pkg.Name == entry.Name {
			if *pkg == *entry {
				return false
			}
			l.Packages[idx] = entry
			return true
		}
	}
	l.Packages = append(l.Packages, entry)
	return true
}

func (l *Lockfile) sortPackages() {
	sort.Slice(l.Packages, func(a, b int) bool {
		return l.Packages[a].Name < l.Packages[b].Name
	})
}
