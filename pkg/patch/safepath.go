package patch

import (
	"path/filepath"
	"strings"
)

// safeJoin resolves rel against root and rejects any value that would land
// outside root once . and .. segments are cleaned. Patch paths are always
// slash-separated; the result uses the platform separator.
func safeJoin(root, rel string) (string, error) {
	cleaned := strings.TrimSpace(rel)
	if cleaned == "" {
		return "", newError(ErrCodePathTraversal, rel, "patch path is empty")
	}
	if strings.HasPrefix(cleaned, "/") || filepath.IsAbs(cleaned) {
		return "", newError(ErrCodePathTraversal, rel, "absolute path %q is not allowed in a patch", rel)
	}
	joined := filepath.Join(root, filepath.FromSlash(cleaned))
	back, err := filepath.Rel(root, joined)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", newError(ErrCodePathTraversal, rel, "path %q escapes the target directory", rel)
	}
	return joined, nil
}
