package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/ws")
	abs := filepath.FromSlash("/elsewhere/en.json")

	assert.Equal(t, abs, Resolve(root, abs))
	assert.Equal(t, filepath.FromSlash("/ws/locales/en.json"), Resolve(root, "locales/en.json"))
	assert.Equal(t, filepath.FromSlash("/ws/en.json"), Resolve(root, "./locales/../en.json"))
	assert.Equal(t, "en.json", Resolve("", "en.json"))
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/ws")
	got := ResolveAll(root, []string{"en.json", filepath.FromSlash("/x/ko.json")})
	assert.Equal(t, []string{filepath.FromSlash("/ws/en.json"), filepath.FromSlash("/x/ko.json")}, got)
}

func TestRelativize(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/ws")

	assert.Equal(t, filepath.FromSlash("locales/en.json"), Relativize(root, filepath.FromSlash("/ws/locales/en.json")))
	assert.Equal(t, filepath.FromSlash("../other/ko.json"), Relativize(root, filepath.FromSlash("/other/ko.json")))
	assert.Equal(t, "en.json", Relativize(root, "./en.json"))
}
