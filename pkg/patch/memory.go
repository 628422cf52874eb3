package patch

import (
	"path"
	"strings"
)

// ApplyToMemory replays a document against an in-memory file map. The
// provided map is copied before mutation and the updated snapshot is
// returned alongside the per-file results.
func ApplyToMemory(doc Document, files map[string]string, opts Options) (map[string]string, []Result, error) {
	snapshot := make(map[string]string, len(files))
	for k, v := range files {
		snapshot[k] = v
	}
	ws := &memoryWorkspace{files: snapshot}
	results, err := apply(doc, ws, opts)
	if err != nil {
		return nil, nil, err
	}
	return ws.files, results, nil
}

// ApplyMemoryPatch parses a raw patch payload and applies it to an in-memory
// map of files.
func ApplyMemoryPatch(patchBody string, files map[string]string, opts Options) (map[string]string, []Result, error) {
	return ApplyToMemory(Parse(patchBody), files, opts)
}

// memoryWorkspace keys files by slash-separated relative paths.
type memoryWorkspace struct {
	files map[string]string
}

func (ws *memoryWorkspace) key(rel string) (string, error) {
	cleaned := path.Clean(strings.TrimSpace(rel))
	if cleaned == "" || cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return "", newError(ErrCodePathTraversal, rel, "path %q escapes the target directory", rel)
	}
	return cleaned, nil
}

func (ws *memoryWorkspace) Exists(relPath string) (bool, error) {
	key, err := ws.key(relPath)
	if err != nil {
		return false, err
	}
	_, ok := ws.files[key]
	return ok, nil
}

func (ws *memoryWorkspace) ReadLines(relPath string) ([]string, error) {
	key, err := ws.key(relPath)
	if err != nil {
		return nil, err
	}
	content, ok := ws.files[key]
	if !ok {
		return nil, newError(ErrCodeFileNotFound, relPath, "failed to read %s: file does not exist", relPath)
	}
	return splitLines(content), nil
}

func (ws *memoryWorkspace) WriteLines(relPath string, lines []string) error {
	key, err := ws.key(relPath)
	if err != nil {
		return err
	}
	ws.files[key] = joinLines(lines)
	return nil
}

func (ws *memoryWorkspace) Remove(relPath string) error {
	key, err := ws.key(relPath)
	if err != nil {
		return err
	}
	if _, ok := ws.files[key]; !ok {
		return newError(ErrCodeFileNotFound, relPath, "failed to delete %s: file does not exist", relPath)
	}
	delete(ws.files, key)
	return nil
}
