package patch

import (
	"strings"
	"testing"
)

func TestApplyToMemoryUpdatesDocument(t *testing.T) {
	t.Parallel()

	patchBody := strings.Join([]string{
		"--- a/notes.txt",
		"+++ b/notes.txt",
		"@@ -1,2 +1,2 @@",
		"-alpha",
		"+gamma",
		" beta",
	}, "\n") + "\n"

	initial := map[string]string{"notes.txt": "alpha\nbeta\n"}
	updated, results, err := ApplyMemoryPatch(patchBody, initial, Options{})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got, want := len(results), 1; got != want {
		t.Fatalf("unexpected result count: got %d want %d", got, want)
	}
	if results[0].Status != "M" || results[0].Path != "notes.txt" {
		t.Fatalf("unexpected result entry: %+v", results[0])
	}
	if got, want := updated["notes.txt"], "gamma\nbeta\n"; got != want {
		t.Fatalf("updated document mismatch: got %q want %q", got, want)
	}

	// Ensure the original map was not mutated.
	if got, want := initial["notes.txt"], "alpha\nbeta\n"; got != want {
		t.Fatalf("initial map mutated: got %q want %q", got, want)
	}
}

func TestApplyToMemoryNormalizesKeys(t *testing.T) {
	t.Parallel()

	patchBody := strings.Join([]string{
		"--- /dev/null",
		"+++ b/nested/./new.txt",
		"@@ -0,0 +1,1 @@",
		"+content",
	}, "\n") + "\n"

	updated, _, err := ApplyMemoryPatch(patchBody, map[string]string{}, Options{})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got, want := updated["nested/new.txt"], "content\n"; got != want {
		t.Fatalf("expected cleaned key, got map %+v", updated)
	}
}

func TestApplyToMemoryRejectsTraversal(t *testing.T) {
	t.Parallel()

	patchBody := strings.Join([]string{
		"--- /dev/null",
		"+++ b/../escape.txt",
		"@@ -0,0 +1,1 @@",
		"+content",
	}, "\n") + "\n"

	_, _, err := ApplyMemoryPatch(patchBody, map[string]string{}, Options{})
	if err == nil {
		t.Fatalf("expected traversal error")
	}
	if got, want := CodeOf(err), ErrCodePathTraversal; got != want {
		t.Fatalf("unexpected code: got %q want %q", got, want)
	}
}
