// Package snapshot stores pristine copies of directory trees under a
// project's .ft-patch directory so later runs can diff against them and
// report drift without a second checkout.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	stateDir     = ".ft-patch"
	snapshotsDir = "snapshots"
	treeDir      = "tree"
	manifestFile = "manifest.json"
)

// Manifest records what a snapshot captured. Digests map forward-slash
// relative paths to their content digest.
type Manifest struct {
	Name    string            `json:"name"`
	Source  string            `json:"source"`
	TakenAt time.Time         `json:"takenAt"`
	Files   int               `json:"files"`
	Digests map[string]string `json:"digests"`
}

// Drift lists how a live tree diverges from a snapshot.
type Drift struct {
	Added   []string
	Removed []string
	Changed []string
}

// Clean reports whether the live tree still matches the snapshot.
func (d Drift) Clean() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Store manages the snapshots of one project.
type Store struct {
	root string
}

// NewStore returns a store rooted at <projectDir>/.ft-patch/snapshots.
// An empty projectDir means the current working directory.
func NewStore(projectDir string) (*Store, error) {
	dir := strings.TrimSpace(projectDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	return &Store{root: filepath.Join(abs, stateDir, snapshotsDir)}, nil
}

// Take copies the tree at dir into the store under name and writes its
// manifest. Retaking an existing name replaces the previous snapshot.
// The .git and .ft-patch directories are never captured.
func (s *Store) Take(name, dir string) (*Manifest, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	source, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	files, err := walkTree(source)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(s.root, name)
	if err := os.RemoveAll(base); err != nil {
		return nil, fmt.Errorf("clear snapshot %s: %w", name, err)
	}
	dest := filepath.Join(base, treeDir)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot %s: %w", name, err)
	}

	digests := make(map[string]string, len(files))
	for rel, abs := range files {
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", abs, err)
		}
		digest, err := Digest(data)
		if err != nil {
			return nil, fmt.Errorf("digest %s: %w", rel, err)
		}
		digests[rel] = digest

		copyPath := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(copyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(copyPath), err)
		}
		if err := os.WriteFile(copyPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("copy %s: %w", rel, err)
		}
	}

	manifest := &Manifest{
		Name:    name,
		Source:  source,
		TakenAt: time.Now().UTC(),
		Files:   len(digests),
		Digests: digests,
	}
	if err := writeManifest(base, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Status compares the live tree at dir against the named snapshot's
// digests without reading the stored copy.
func (s *Store) Status(name, dir string) (Drift, error) {
	manifest, err := s.Manifest(name)
	if err != nil {
		return Drift{}, err
	}
	source, err := filepath.Abs(dir)
	if err != nil {
		return Drift{}, fmt.Errorf("resolve %s: %w", dir, err)
	}
	live, err := walkTree(source)
	if err != nil {
		return Drift{}, err
	}

	var drift Drift
	for rel, abs := range live {
		recorded, ok := manifest.Digests[rel]
		if !ok {
			drift.Added = append(drift.Added, rel)
			continue
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return Drift{}, fmt.Errorf("read %s: %w", abs, err)
		}
		digest, err := Digest(data)
		if err != nil {
			return Drift{}, fmt.Errorf("digest %s: %w", rel, err)
		}
		if digest != recorded {
			drift.Changed = append(drift.Changed, rel)
		}
	}
	for rel := range manifest.Digests {
		if _, ok := live[rel]; !ok {
			drift.Removed = append(drift.Removed, rel)
		}
	}
	sort.Strings(drift.Added)
	sort.Strings(drift.Removed)
	sort.Strings(drift.Changed)
	return drift, nil
}

// List returns the manifests of every stored snapshot ordered by name.
// Entries without a readable manifest are skipped.
func (s *Store) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := s.Manifest(entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}

// Manifest loads the manifest of the named snapshot.
func (s *Store) Manifest(name string) (*Manifest, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, name, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("snapshot %s: invalid manifest: %w", name, err)
	}
	return &manifest, nil
}

// Path returns the directory holding the named snapshot's stored tree.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name, treeDir)
}

// Remove deletes the named snapshot.
func (s *Store) Remove(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	base := filepath.Join(s.root, name)
	if _, err := os.Stat(base); err != nil {
		return fmt.Errorf("snapshot %s: %w", name, err)
	}
	if err := os.RemoveAll(base); err != nil {
		return fmt.Errorf("remove snapshot %s: %w", name, err)
	}
	return nil
}

func writeManifest(base string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(base, manifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// validName rejects names that would escape the snapshots directory or
// collide with its layout.
func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("snapshot name is empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}

// walkTree maps forward-slash relative paths to absolute locations for
// every regular file under root. The tool's own state directory and the
// VCS directory are skipped; other dot entries are kept so files like
// .env stay covered. Symlinks are never followed.
func walkTree(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			if d.Name() == stateDir || d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
