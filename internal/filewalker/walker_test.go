package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalker_Walk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "src", "App.tsx"), `t("a")`)
	touch(t, filepath.Join(root, "src", "util.JS"), `t("b")`)
	touch(t, filepath.Join(root, "src", "en.json"), `{}`)
	touch(t, filepath.Join(root, "node_modules", "lib", "index.js"), `t("c")`)
	touch(t, filepath.Join(root, "build", "out.js"), `t("d")`)

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "src", "App.tsx"),
		filepath.Join(root, "src", "util.JS"),
	}, paths)
}

func TestWalker_ParseFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "a.js"), "t('x.y')\n")

	w := NewWalker()
	entries, err := w.Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	result, err := w.ParseFile(entries[0])
	require.NoError(t, err)
	require.Len(t, result.Usages, 1)
	assert.Equal(t, "x.y", result.Usages[0].Key)
}

func TestWalker_RootErrors(t *testing.T) {
	t.Parallel()

	_, err := NewWalker().Walk(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.js")
	touch(t, file, "")
	_, err = NewWalker().Walk(file)
	assert.ErrorContains(t, err, "not a directory")
}
