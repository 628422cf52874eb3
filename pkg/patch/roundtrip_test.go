package patch

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/buivietphi/ft-patch-package/pkg/diff"
	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
}

func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree: %v", err)
	}
	return files
}

func numberedLines(n int, edits map[int]string) string {
	var content string
	for i := 1; i <= n; i++ {
		line := "line" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		if replacement, ok := edits[i]; ok {
			line = replacement
		}
		content += line + "\n"
	}
	return content
}

func TestGenerateThenApplyRoundTrip(t *testing.T) {
	t.Parallel()

	base := map[string]string{
		"main.go":         "package main\n\nfunc main() {\n\tprintln(\"old\")\n}\n",
		"docs/readme.md":  "# Title\n\nSome text.\n",
		"config/app.json": "{\n  \"debug\": false\n}\n",
		"keep.txt":        "unchanged\n",
		"list.txt":        numberedLines(15, nil),
	}
	target := map[string]string{
		"main.go":        "package main\n\nfunc main() {\n\tprintln(\"new\")\n}\n",
		"docs/readme.md": "# Title\n\nSome text.\n\nMore text.\n",
		"keep.txt":       "unchanged\n",
		"docs/extra.txt": "fresh\n",
		"list.txt":       numberedLines(15, map[int]string{2: "edited02", 14: "edited14"}),
	}

	baseDir := t.TempDir()
	targetDir := t.TempDir()
	workDir := t.TempDir()
	writeTree(t, baseDir, base)
	writeTree(t, targetDir, target)
	writeTree(t, workDir, base)

	patchText, err := diff.Generate(baseDir, targetDir, diff.Options{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if !IsApplicable(workDir, patchText) {
		t.Fatalf("generated patch should be applicable to the base tree:\n%s", patchText)
	}
	if IsApplied(workDir, patchText) {
		t.Fatalf("generated patch should not report as applied yet")
	}

	if _, err := ApplyFilesystemPatch(patchText, FilesystemOptions{Root: workDir}); err != nil {
		t.Fatalf("forward apply returned error: %v\npatch:\n%s", err, patchText)
	}
	if diffOut := cmp.Diff(target, readTree(t, workDir)); diffOut != "" {
		t.Fatalf("tree after forward apply (-want, +got):\n%s", diffOut)
	}
	if IsApplicable(workDir, patchText) {
		t.Fatalf("patch should not be applicable twice")
	}
	if !IsApplied(workDir, patchText) {
		t.Fatalf("patch should report as applied")
	}

	if _, err := ApplyFilesystemPatch(patchText, FilesystemOptions{
		Options: Options{Reverse: true},
		Root:    workDir,
	}); err != nil {
		t.Fatalf("reverse apply returned error: %v\npatch:\n%s", err, patchText)
	}
	if diffOut := cmp.Diff(base, readTree(t, workDir)); diffOut != "" {
		t.Fatalf("tree after reverse apply (-want, +got):\n%s", diffOut)
	}
	if !IsApplicable(workDir, patchText) {
		t.Fatalf("patch should be applicable again after the reverse apply")
	}
}

func TestGeneratedPatchSurvivesReparsing(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	targetDir := t.TempDir()
	writeTree(t, baseDir, map[string]string{"file.txt": "line1\nold_line\nline3\n"})
	writeTree(t, targetDir, map[string]string{"file.txt": "line1\nnew_line\nline3\n"})

	patchText, err := diff.Generate(baseDir, targetDir, diff.Options{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	doc := Parse(patchText)
	if len(doc.Files) != 1 {
		t.Fatalf("unexpected file count: %d\n%s", len(doc.Files), patchText)
	}
	hunk := doc.Files[0].Hunks[0]
	if hunk.OriginalStart != 1 || hunk.OriginalCount != 3 || hunk.ModifiedStart != 1 || hunk.ModifiedCount != 3 {
		t.Fatalf("unexpected hunk header: %+v", hunk)
	}

	files := map[string]string{"file.txt": "line1\nold_line\nline3\n"}
	updated, _, err := ApplyToMemory(doc, files, Options{})
	if err != nil {
		t.Fatalf("ApplyToMemory returned error: %v", err)
	}
	if got, want := updated["file.txt"], "line1\nnew_line\nline3\n"; got != want {
		t.Fatalf("updated content mismatch: got %q want %q", got, want)
	}
}
