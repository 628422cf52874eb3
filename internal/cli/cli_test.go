package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const modificationPatch = `--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,3 @@
 one
-two
+2
 three
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunInitScaffoldsWorkspace(t *testing.T) {
	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, "init", "--dir", dir, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "created ft-patch.json")
	require.FileExists(t, filepath.Join(dir, "ft-patch.json"))
	require.DirExists(t, filepath.Join(dir, ".ft-patch", "patches"))

	code, stdout, _ = runCLI(t, "init", "--dir", dir, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "already exists")
}

func TestRunDiffWritesToStdout(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	target := filepath.Join(root, "target")
	mustWriteFile(t, base, "file.txt", "one\ntwo\nthree\n")
	mustWriteFile(t, target, "file.txt", "one\n2\nthree\n")

	code, stdout, stderr := runCLI(t, "diff", base, target, "--dir", root, "--no-color")
	require.Equal(t, 0, code, stderr)
	want := `diff --git a/file.txt b/file.txt
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,3 @@
 one
-two
+2
 three
`
	require.Equal(t, want, stdout)
}

func TestRunDiffApplyRoundTrip(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	target := filepath.Join(root, "target")
	work := filepath.Join(root, "work")
	for _, dir := range []string{base, work} {
		mustWriteFile(t, dir, "file.txt", "one\ntwo\nthree\n")
	}
	mustWriteFile(t, target, "file.txt", "one\n2\nthree\n")
	mustWriteFile(t, target, "docs/new.md", "fresh\n")

	patchFile := filepath.Join(root, "change.patch")
	code, stdout, stderr := runCLI(t, "diff", base, target, "-o", patchFile, "--dir", root, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "wrote "+patchFile)
	require.Contains(t, stdout, "2 files, +2 -1")

	code, stdout, _ = runCLI(t, "check", patchFile, "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "applicable")

	code, stdout, stderr = runCLI(t, "apply", patchFile, "--dir", work, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "A docs/new.md")
	require.Contains(t, stdout, "M file.txt")
	require.Contains(t, stdout, "applied 2 files, +2 -1")
	require.Equal(t, "one\n2\nthree\n", readFile(t, filepath.Join(work, "file.txt")))
	require.Equal(t, "fresh\n", readFile(t, filepath.Join(work, "docs", "new.md")))

	code, stdout, _ = runCLI(t, "check", patchFile, "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "already applied")

	code, stdout, stderr = runCLI(t, "apply", patchFile, "--dir", work, "--reverse", "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "reverted")
	require.Equal(t, "one\ntwo\nthree\n", readFile(t, filepath.Join(work, "file.txt")))
	require.NoFileExists(t, filepath.Join(work, "docs", "new.md"))
}

func TestRunApplyDryRun(t *testing.T) {
	work := t.TempDir()
	mustWriteFile(t, work, "file.txt", "one\ntwo\nthree\n")
	mustWriteFile(t, work, "change.patch", modificationPatch)

	code, stdout, stderr := runCLI(t, "apply", "change.patch", "--dry-run", "--dir", work, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "would apply")
	require.Equal(t, "one\ntwo\nthree\n", readFile(t, filepath.Join(work, "file.txt")))
}

func TestRunApplyReportsHunkFailure(t *testing.T) {
	work := t.TempDir()
	mustWriteFile(t, work, "file.txt", "completely\ndifferent\n")
	mustWriteFile(t, work, "bad.patch", modificationPatch)

	code, _, stderr := runCLI(t, "apply", "bad.patch", "--dir", work, "--no-color")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "HUNK_APPLICATION_FAILED")

	code, stdout, _ := runCLI(t, "check", "bad.patch", "--dir", work, "--no-color")
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "does not apply")
}

func TestRunInspect(t *testing.T) {
	work := t.TempDir()
	mustWriteFile(t, work, "change.patch", modificationPatch)

	code, stdout, _ := runCLI(t, "inspect", "change.patch", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "modified file.txt  +1 -1")
	require.Contains(t, stdout, "@@ -1,3 +1,3 @@")
	require.Contains(t, stdout, "1 file, +1 -1")

	mustWriteFile(t, work, "empty.patch", "no diff content here\n")
	code, stdout, _ = runCLI(t, "inspect", "empty.patch", "--dir", work, "--no-color")
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "no hunks found")
}

func TestRunSnapshotDiffStatusFlow(t *testing.T) {
	work := t.TempDir()
	mustWriteFile(t, work, "app.txt", "one\ntwo\nthree\n")

	code, stdout, stderr := runCLI(t, "snapshot", "pristine", "--dir", work, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "snapshot pristine")

	code, stdout, _ = runCLI(t, "status", "pristine", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "clean")

	mustWriteFile(t, work, "app.txt", "one\n2\nthree\n")

	code, stdout, _ = runCLI(t, "status", "pristine", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "M app.txt")
	require.Contains(t, stdout, "0 added, 1 changed, 0 removed")

	code, stdout, _ = runCLI(t, "diff", "--snapshot", "pristine", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "--- a/app.txt")
	require.Contains(t, stdout, "-two")
	require.Contains(t, stdout, "+2")

	code, stdout, _ = runCLI(t, "snapshot", "list", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "pristine")

	code, _, stderr = runCLI(t, "snapshot", "remove", "pristine", "--dir", work, "--no-color")
	require.Equal(t, 0, code, stderr)

	code, stdout, _ = runCLI(t, "snapshot", "list", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "no snapshots")
}

func TestRunDoctor(t *testing.T) {
	work := t.TempDir()

	code, stdout, _ := runCLI(t, "doctor", "--dir", work, "--no-color")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "[ OK ] workdir-exists")
	require.Contains(t, stdout, "[WARN] patch-dir")

	missing := filepath.Join(work, "nope")
	code, stdout, _ = runCLI(t, "doctor", "--dir", missing, "--no-color")
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "[FAIL]")
}

func TestRunPatchDirConfigAndFlag(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	target := filepath.Join(root, "t")
	mustWriteFile(t, base, "f.txt", "a\n")
	mustWriteFile(t, target, "f.txt", "b\n")
	mustWriteFile(t, root, "ft-patch.json", `{"patchDir": "my-patches"}`)

	code, _, stderr := runCLI(t, "diff", base, target, "--save", "--dir", root, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, filepath.Join(root, "my-patches", "t.patch"))

	code, _, stderr = runCLI(t, "diff", base, target, "--save", "--patch-dir", "flagged", "--dir", root, "--no-color")
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, filepath.Join(root, "flagged", "t.patch"))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, root, "ft-patch.json", `{"contextLines": -1}`)

	code, _, stderr := runCLI(t, "doctor", "--dir", root, "--no-color")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "contextLines")
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runCLI(t, "bogus", "--dir", dir)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unknown command")

	code, _, stderr = runCLI(t, "apply", "--dir", dir)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "accepts 1 arg")

	code, _, stderr = runCLI(t, "diff", "onlyone", "--dir", dir)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "diff needs")

	code, _, _ = runCLI(t, "snapshot", "--bogus-flag")
	require.Equal(t, 2, code)

	code, _, stderr = runCLI(t, "watch", "a", "b", "--dir", dir)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "-o")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func mustWriteFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
