package diff

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// listFiles enumerates the regular files under root and maps each
// forward-slash relative path to its absolute location. Symlinks are never
// followed; both symlinked files and directories are skipped so cyclic
// trees cannot occur.
func listFiles(root string, exclude []string) (map[string]string, error) {
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
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files[rel] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// unionPaths merges the relative paths of both sides into the deterministic
// lexicographic emission order.
func unionPaths(base, target map[string]string) []string {
	seen := make(map[string]struct{}, len(base)+len(target))
	paths := make([]string, 0, len(base)+len(target))
	for rel := range base {
		seen[rel] = struct{}{}
		paths = append(paths, rel)
	}
	for rel := range target {
		if _, ok := seen[rel]; ok {
			continue
		}
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

func excluded(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	segments := strings.Split(rel, "/")
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		for _, segment := range segments {
			if ok, _ := path.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
