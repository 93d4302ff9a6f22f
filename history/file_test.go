package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveAndReopenRoundTrips(t *testing.T) {
	dir := t.TempDir()

	fs, err := OpenFileStore(dir, "fish")
	require.NoError(t, err)
	fs.Add(Item{Text: "echo one"})
	fs.Add(Item{Text: "echo two", RequiredPaths: []string{"/tmp/two"}})
	require.NoError(t, fs.Save())

	reopened, err := OpenFileStore(dir, "fish")
	require.NoError(t, err)

	var texts []string
	for _, it := range reopened.Items() {
		texts = append(texts, it.Text)
	}
	require.ElementsMatch(t, []string{"echo one", "echo two"}, texts)
}

func TestFileStoreLoadsLegacyVisFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fish_history")
	legacy := legacyCookie + "\n" + encodeVis("echo legacy") + "\n"
	require.NoError(t, writeRename(path, []byte(legacy)))

	fs, err := OpenFileStore(dir, "fish")
	require.NoError(t, err)

	var texts []string
	for _, it := range fs.Items() {
		texts = append(texts, it.Text)
	}
	require.Contains(t, texts, "echo legacy")
}
