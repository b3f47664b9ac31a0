package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the filename the driver looks for when resolving a
// project root.
const ManifestName = "quetite.yml"

// ErrManifestNotFound reports that no quetite.yml exists from the start
// directory upwards.
var ErrManifestNotFound = errors.New("quetite.yml not found")

// Manifest represents the parsed contents of quetite.yml.
type Manifest struct {
	Path    string
	Name    string
	Version string
	Entry   string
	Paths   []string
	Deps    map[string]*DependencySpec
}

// DependencySpec describes a git-hosted script library. Exactly one of
// Rev, Tag or Branch may pin the revision; an unpinned dependency tracks
// the remote default branch.
type DependencySpec struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestDisk struct {
	Name    string                     `yaml:"name"`
	Version string                     `yaml:"version"`
	Entry   string                     `yaml:"entry"`
	Paths   []string                   `yaml:"paths"`
	Deps    map[string]*DependencySpec `yaml:"deps"`
}

// LoadManifest parses and validates quetite.yml at the given path.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw manifestDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	manifest := &Manifest{
		Path:    abs,
		Name:    strings.TrimSpace(raw.Name),
		Version: strings.TrimSpace(raw.Version),
		Entry:   strings.TrimSpace(raw.Entry),
		Paths:   raw.Paths,
		Deps:    raw.Deps,
	}
	if manifest.Deps == nil {
		manifest.Deps = make(map[string]*DependencySpec)
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from the start directory upwards looking for
// quetite.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name is required")
	}
	for name, spec := range m.Deps {
		if spec == nil || strings.TrimSpace(spec.Git) == "" {
			issues = append(issues, fmt.Sprintf("dependency %q requires a git URL", name))
			continue
		}
		pins := 0
		for _, pin := range []string{spec.Rev, spec.Tag, spec.Branch} {
			if strings.TrimSpace(pin) != "" {
				pins++
			}
		}
		if pins > 1 {
			issues = append(issues, fmt.Sprintf("dependency %q may pin only one of rev, tag or branch", name))
		}
	}
	if len(issues) > 0 {
		sort.Strings(issues)
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Root returns the directory containing the manifest.
func (m *Manifest) Root() string {
	return filepath.Dir(m.Path)
}

// EntryPath resolves the manifest's entry script relative to the project
// root.
func (m *Manifest) EntryPath() (string, error) {
	if m.Entry == "" {
		return "", fmt.Errorf("manifest %s has no entry script", m.Path)
	}
	if filepath.IsAbs(m.Entry) {
		return filepath.Clean(m.Entry), nil
	}
	return filepath.Join(m.Root(), filepath.FromSlash(m.Entry)), nil
}

// SearchPaths returns the use roots the manifest contributes: its paths
// entries plus the checkout directory of every dependency.
func (m *Manifest) SearchPaths() []string {
	var out []string
	for _, p := range m.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root(), filepath.FromSlash(p))
		}
		out = append(out, p)
	}
	names := make([]string, 0, len(m.Deps))
	for name := range m.Deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, filepath.Join(m.Root(), ModulesDir, name))
	}
	return out
}
