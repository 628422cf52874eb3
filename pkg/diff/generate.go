package diff

import (
	"fmt"
	"slices"
	"strings"
)

// Generate walks baseDir and targetDir and renders the unified diff covering
// every differing text file. Identical trees produce an empty string. Files
// are emitted in lexicographic order of their relative paths so the output
// is reproducible.
func Generate(baseDir, targetDir string, opts Options) (string, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return "", err
	}

	baseFiles, err := listFiles(baseDir, opts.Exclude)
	if err != nil {
		return "", err
	}
	targetFiles, err := listFiles(targetDir, opts.Exclude)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, rel := range unionPaths(baseFiles, targetFiles) {
		basePath, inBase := baseFiles[rel]
		targetPath, inTarget := targetFiles[rel]

		switch {
		case !inBase:
			lines, binary, err := readFileLines(targetPath)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", rel, err)
			}
			if binary {
				continue
			}
			writeCreation(&sb, rel, lines)
		case !inTarget:
			lines, binary, err := readFileLines(basePath)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", rel, err)
			}
			if binary {
				continue
			}
			writeDeletion(&sb, rel, lines)
		default:
			baseLines, baseBinary, err := readFileLines(basePath)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", rel, err)
			}
			targetLines, targetBinary, err := readFileLines(targetPath)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", rel, err)
			}
			if baseBinary || targetBinary {
				continue
			}
			if slices.Equal(baseLines, targetLines) {
				continue
			}
			edits := editScript(baseLines, targetLines, opts.MaxLCSLines)
			hunks := buildHunks(edits, opts.ContextLines)
			if len(hunks) == 0 {
				continue
			}
			writeHeader(&sb, rel, false, false)
			for _, h := range hunks {
				writeHunk(&sb, h)
			}
		}
	}
	return sb.String(), nil
}
