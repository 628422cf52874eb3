package patch

import "slices"

// Options configure how a parsed document is replayed.
type Options struct {
	// Reverse swaps the direction of every file diff: insert lines become
	// the expected content and delete lines the replacement, creations
	// become deletions and deletions become creations.
	Reverse bool
	// DryRun performs every check without mutating the workspace and stops
	// at the first failure.
	DryRun bool
}

// FilesystemOptions augments Options with the root directory used to resolve
// the relative paths named by a patch.
type FilesystemOptions struct {
	Options
	// Root is the directory patches are applied under. Empty means the
	// current working directory.
	Root string
}

// Result describes the outcome for a single file when applying a document.
// Status is "A" for added, "M" for modified and "D" for deleted.
type Result struct {
	Status string
	Path   string
}

// workspace abstracts the file tree a document is replayed against so the
// same engine serves both the filesystem and in-memory file maps. Paths are
// patch-relative; implementations reject any path escaping their root.
type workspace interface {
	Exists(path string) (bool, error)
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string) error
	Remove(path string) error
}

func apply(doc Document, ws workspace, opts Options) ([]Result, error) {
	if doc.IsEmpty() {
		return nil, newError(ErrCodeNoHunks, "", "no file sections found in patch text")
	}
	var results []Result
	var firstErr error
	for _, file := range doc.Files {
		result, err := applyFileDiff(file, ws, opts)
		if err != nil {
			if opts.DryRun {
				return nil, err
			}
			// A mutating run keeps going so independent files still land;
			// the first failure is reported once the document is done.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results = append(results, result)
	}
	return results, firstErr
}

func applyFileDiff(file FileDiff, ws workspace, opts Options) (Result, error) {
	before, after := file.OriginalPath, file.ModifiedPath
	if opts.Reverse {
		before, after = after, before
	}
	switch {
	case before == NoFile && after == NoFile:
		return Result{}, newError(ErrCodeHunkFailed, "", "file section names %s on both sides", NoFile)
	case after == NoFile:
		return applyDeletion(file, before, ws, opts)
	case before == NoFile:
		return applyCreation(file, after, ws, opts)
	default:
		return applyModification(file, before, ws, opts)
	}
}

// applyCreation writes the content reconstructed from the direction-adjusted
// insert lines. A dry run refuses a target that already exists, so a clean
// applicability check cannot succeed twice in a row; a mutating run
// overwrites whatever is there.
func applyCreation(file FileDiff, path string, ws workspace, opts Options) (Result, error) {
	exists, err := ws.Exists(path)
	if err != nil {
		return Result{}, err
	}
	if opts.DryRun {
		if exists {
			return Result{}, newError(ErrCodeFileExists, path, "cannot create %s: file already exists", path)
		}
		return Result{Status: "A", Path: path}, nil
	}
	if err := ws.WriteLines(path, fileProduced(file, opts.Reverse)); err != nil {
		return Result{}, err
	}
	return Result{Status: "A", Path: path}, nil
}

// applyDeletion removes the target. A forward deletion checks existence
// only; reversing a creation additionally requires the current content to
// equal what the creation originally wrote.
func applyDeletion(file FileDiff, path string, ws workspace, opts Options) (Result, error) {
	exists, err := ws.Exists(path)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, newError(ErrCodeFileNotFound, path, "cannot delete %s: file does not exist", path)
	}
	if opts.Reverse {
		current, err := ws.ReadLines(path)
		if err != nil {
			return Result{}, err
		}
		if !slices.Equal(current, fileExpected(file, opts.Reverse)) {
			return Result{}, newError(ErrCodeContentMismatch, path, "cannot revert creation of %s: current content differs from the patch", path)
		}
	}
	if opts.DryRun {
		return Result{Status: "D", Path: path}, nil
	}
	if err := ws.Remove(path); err != nil {
		return Result{}, err
	}
	return Result{Status: "D", Path: path}, nil
}

func applyModification(file FileDiff, path string, ws workspace, opts Options) (Result, error) {
	exists, err := ws.Exists(path)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, newError(ErrCodeFileNotFound, path, "cannot patch %s: file does not exist", path)
	}
	lines, err := ws.ReadLines(path)
	if err != nil {
		return Result{}, err
	}

	// Hunks replay top to bottom. offset tracks how much earlier hunks grew
	// or shrank the file so later window positions stay valid.
	offset := 0
	for index, hunk := range file.Hunks {
		number := index + 1
		start := hunk.OriginalStart
		if opts.Reverse {
			start = hunk.ModifiedStart
		}
		start = start - 1 + offset

		expected := hunkExpected(hunk, opts.Reverse)
		replacement := hunkProduced(hunk, opts.Reverse)

		if start < 0 || start+len(expected) > len(lines) {
			return Result{}, newHunkError(path, number, "hunk %d does not fit inside %s", number, path)
		}
		for j, want := range expected {
			if lines[start+j] != want {
				return Result{}, newHunkError(path, number, "hunk %d does not match %s at line %d", number, path, start+j+1)
			}
		}
		lines = splice(lines, start, len(expected), replacement)
		offset += len(replacement) - len(expected)
	}

	if opts.DryRun {
		return Result{Status: "M", Path: path}, nil
	}
	if err := ws.WriteLines(path, lines); err != nil {
		return Result{}, err
	}
	return Result{Status: "M", Path: path}, nil
}

// hunkLines flattens a hunk body into plain text, excluding lines of the
// given kind.
func hunkLines(hunk Hunk, exclude LineKind) []string {
	lines := make([]string, 0, len(hunk.Lines))
	for _, line := range hunk.Lines {
		if line.Kind == exclude {
			continue
		}
		lines = append(lines, line.Text)
	}
	return lines
}

// hunkExpected returns the lines a hunk requires to be present before it
// applies: context plus deletes forward, context plus inserts in reverse.
func hunkExpected(hunk Hunk, reverse bool) []string {
	if reverse {
		return hunkLines(hunk, LineDelete)
	}
	return hunkLines(hunk, LineInsert)
}

// hunkProduced returns the lines a hunk leaves behind once applied.
func hunkProduced(hunk Hunk, reverse bool) []string {
	if reverse {
		return hunkLines(hunk, LineInsert)
	}
	return hunkLines(hunk, LineDelete)
}

func fileExpected(file FileDiff, reverse bool) []string {
	var lines []string
	for _, hunk := range file.Hunks {
		lines = append(lines, hunkExpected(hunk, reverse)...)
	}
	return lines
}

func fileProduced(file FileDiff, reverse bool) []string {
	var lines []string
	for _, hunk := range file.Hunks {
		lines = append(lines, hunkProduced(hunk, reverse)...)
	}
	return lines
}

func splice(target []string, index, deleteCount int, replacement []string) []string {
	if deleteCount == 0 && len(replacement) == 0 {
		return target
	}
	result := make([]string, 0, len(target)-deleteCount+len(replacement))
	result = append(result, target[:index]...)
	result = append(result, replacement...)
	result = append(result, target[index+deleteCount:]...)
	return result
}
