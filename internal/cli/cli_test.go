package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"i18n-helper/internal/config"
	"i18n-helper/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enJSON = `{
    "home": {
        "title": "Home"
    },
    "greet": "Hello"
}
`

func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(enJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "i18n-helper.json"),
		[]byte(`{"translationFiles": ["en.json"]}`), 0o644))
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{Workspace: dir, WorkerCount: 2}
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLookupCmd(t *testing.T) {
	dir := newWorkspace(t)

	out, err := run(t, dir, "lookup", "home.title")
	require.NoError(t, err)
	assert.Equal(t, "Home\ten.json\n", out)

	_, err = run(t, dir, "lookup", "home.missing")
	assert.True(t, errs.IsKind(err, errs.NotFound))
}

func TestLocateCmd(t *testing.T) {
	dir := newWorkspace(t)

	out, err := run(t, dir, "locate", "home.title")
	require.NoError(t, err)
	assert.Equal(t, "en.json:3:9\n", out)
}

func TestHoverAndDefinitionCmd(t *testing.T) {
	dir := newWorkspace(t)
	src := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(src, []byte(`const a = t("greet");`), 0o644))

	out, err := run(t, dir, "hover", src, "14")
	require.NoError(t, err)
	assert.Equal(t, "**Translation**: Hello\n", out)

	out, err = run(t, dir, "definition", src, "14")
	require.NoError(t, err)
	assert.Equal(t, "en.json:5:5\n", out)

	_, err = run(t, dir, "hover", src, "2")
	assert.ErrorIs(t, err, errNoCall)

	_, err = run(t, dir, "hover", src, "abc")
	assert.ErrorContains(t, err, "invalid offset")
}

func TestCheckCmd(t *testing.T) {
	dir := newWorkspace(t)
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "page.tsx"),
		[]byte("t('greet')\nt('nav.back')\n"), 0o644))

	out, err := run(t, dir, "check", srcDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, filepath.FromSlash("src/page.tsx")+`:2:1: missing translation key "nav.back"`+"\n", out)
}

func TestAddCmd(t *testing.T) {
	dir := t.TempDir()
	ko := filepath.Join(dir, "locales", "ko.json")

	out, err := run(t, dir, "add", ko)
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("locales/ko.json")+"\n", out)

	_, err = os.Stat(filepath.Join(dir, "i18n-helper.json"))
	assert.NoError(t, err)
}

func TestListCmd_ConfigMissing(t *testing.T) {
	_, err := run(t, t.TempDir(), "list")
	assert.True(t, errs.IsKind(err, errs.ConfigMissing))
}
