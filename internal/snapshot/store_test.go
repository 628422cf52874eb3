package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTakeRecordsManifestAndCopiesTree(t *testing.T) {
	project := t.TempDir()
	mustWriteFile(t, project, "main.go", "package main\n")
	mustWriteFile(t, project, "docs/readme.md", "# demo\n")
	mustWriteFile(t, project, ".env", "KEY=value\n")
	mustWriteFile(t, project, ".git/HEAD", "ref: refs/heads/main\n")

	store, err := NewStore(project)
	require.NoError(t, err)

	manifest, err := store.Take("pristine", project)
	require.NoError(t, err)
	require.Equal(t, "pristine", manifest.Name)
	require.Equal(t, 3, manifest.Files)
	require.Contains(t, manifest.Digests, "main.go")
	require.Contains(t, manifest.Digests, "docs/readme.md")
	require.Contains(t, manifest.Digests, ".env")
	require.NotContains(t, manifest.Digests, ".git/HEAD")
	require.False(t, manifest.TakenAt.IsZero())

	copied, err := os.ReadFile(filepath.Join(store.Path("pristine"), "docs", "readme.md"))
	require.NoError(t, err)
	require.Equal(t, "# demo\n", string(copied))

	loaded, err := store.Manifest("pristine")
	require.NoError(t, err)
	require.Equal(t, manifest.Digests, loaded.Digests)
}

func TestTakeRejectsBadNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		_, err := store.Take(name, t.TempDir())
		require.Error(t, err, "name %q", name)
	}
}

func TestTakeReplacesExistingSnapshot(t *testing.T) {
	project := t.TempDir()
	source := t.TempDir()
	mustWriteFile(t, source, "old.txt", "old\n")

	store, err := NewStore(project)
	require.NoError(t, err)
	_, err = store.Take("pristine", source)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(source, "old.txt")))
	mustWriteFile(t, source, "new.txt", "new\n")

	manifest, err := store.Take("pristine", source)
	require.NoError(t, err)
	require.Equal(t, 1, manifest.Files)
	require.Contains(t, manifest.Digests, "new.txt")

	_, err = os.Stat(filepath.Join(store.Path("pristine"), "old.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestStatusReportsDrift(t *testing.T) {
	project := t.TempDir()
	source := t.TempDir()
	mustWriteFile(t, source, "stable.txt", "same\n")
	mustWriteFile(t, source, "edited.txt", "before\n")
	mustWriteFile(t, source, "doomed.txt", "bye\n")

	store, err := NewStore(project)
	require.NoError(t, err)
	_, err = store.Take("pristine", source)
	require.NoError(t, err)

	drift, err := store.Status("pristine", source)
	require.NoError(t, err)
	require.True(t, drift.Clean())

	mustWriteFile(t, source, "edited.txt", "after\n")
	mustWriteFile(t, source, "fresh.txt", "hi\n")
	require.NoError(t, os.Remove(filepath.Join(source, "doomed.txt")))

	drift, err = store.Status("pristine", source)
	require.NoError(t, err)
	require.False(t, drift.Clean())
	require.Equal(t, []string{"fresh.txt"}, drift.Added)
	require.Equal(t, []string{"doomed.txt"}, drift.Removed)
	require.Equal(t, []string{"edited.txt"}, drift.Changed)
}

func TestStatusUnknownSnapshot(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Status("missing", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestListReturnsSortedManifests(t *testing.T) {
	project := t.TempDir()
	source := t.TempDir()
	mustWriteFile(t, source, "file.txt", "body\n")

	store, err := NewStore(project)
	require.NoError(t, err)

	manifests, err := store.List()
	require.NoError(t, err)
	require.Empty(t, manifests)

	_, err = store.Take("beta", source)
	require.NoError(t, err)
	_, err = store.Take("alpha", source)
	require.NoError(t, err)

	manifests, err = store.List()
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	require.Equal(t, "alpha", manifests[0].Name)
	require.Equal(t, "beta", manifests[1].Name)
}

func TestRemoveDeletesSnapshot(t *testing.T) {
	project := t.TempDir()
	source := t.TempDir()
	mustWriteFile(t, source, "file.txt", "body\n")

	store, err := NewStore(project)
	require.NoError(t, err)
	_, err = store.Take("pristine", source)
	require.NoError(t, err)

	require.NoError(t, store.Remove("pristine"))
	_, err = store.Manifest("pristine")
	require.Error(t, err)

	require.Error(t, store.Remove("pristine"))
}

func TestDigestIsStable(t *testing.T) {
	first, err := Digest([]byte("contents"))
	require.NoError(t, err)
	second, err := Digest([]byte("contents"))
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 16)

	other, err := Digest([]byte("different"))
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func mustWriteFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
