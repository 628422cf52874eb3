package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ApplyFilesystem replays a parsed document against the filesystem tree
// rooted at opts.Root.
func ApplyFilesystem(doc Document, opts FilesystemOptions) ([]Result, error) {
	ws, err := newFilesystemWorkspace(opts.Root)
	if err != nil {
		return nil, err
	}
	return apply(doc, ws, opts.Options)
}

// ApplyFilesystemPatch parses a raw patch payload and applies it to the
// filesystem.
func ApplyFilesystemPatch(patchBody string, opts FilesystemOptions) ([]Result, error) {
	return ApplyFilesystem(Parse(patchBody), opts)
}

// IsApplicable reports whether the patch would apply cleanly to the tree
// rooted at root. It is a forward dry run and never mutates anything.
func IsApplicable(root, patchBody string) bool {
	_, err := ApplyFilesystemPatch(patchBody, FilesystemOptions{
		Options: Options{DryRun: true},
		Root:    root,
	})
	return err == nil
}

// IsApplied reports whether the patch already landed on the tree rooted at
// root, that is, whether it would revert cleanly.
func IsApplied(root, patchBody string) bool {
	_, err := ApplyFilesystemPatch(patchBody, FilesystemOptions{
		Options: Options{DryRun: true, Reverse: true},
		Root:    root,
	})
	return err == nil
}

type filesystemWorkspace struct {
	root string
}

func newFilesystemWorkspace(root string) (*filesystemWorkspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = wd
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &filesystemWorkspace{root: root}, nil
}

func (ws *filesystemWorkspace) Exists(path string) (bool, error) {
	abs, err := safeJoin(ws.root, path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, newError(ErrCodeFileNotFound, path, "%s is a directory, not a file", path)
	}
	return true, nil
}

func (ws *filesystemWorkspace) ReadLines(path string) ([]string, error) {
	abs, err := safeJoin(ws.root, path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newError(ErrCodeFileNotFound, path, "failed to read %s: file does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return splitLines(string(content)), nil
}

func (ws *filesystemWorkspace) WriteLines(path string, lines []string) error {
	abs, err := safeJoin(ws.root, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(abs, []byte(joinLines(lines)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (ws *filesystemWorkspace) Remove(path string) error {
	abs, err := safeJoin(ws.root, path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// joinLines renders logical lines back into file content with a single
// trailing newline. Zero lines produce an empty file.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
