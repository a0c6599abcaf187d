package cursor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyAtCursor(t *testing.T) {
	t.Parallel()

	text := "const a = t(\"home.title\"); const b = t('menu.open') + t(`x.y`);"
	second := strings.Index(text, "t('menu")
	third := strings.Index(text, "t(`x.y`)")

	tests := []struct {
		name   string
		offset int
		want   string
		ok     bool
	}{
		{"inside first key", strings.Index(text, "home") + 2, "home.title", true},
		{"on the t", strings.Index(text, "t(\"home"), "home.title", true},
		{"second call", second + 5, "menu.open", true},
		{"end of second call", second + len("t('menu.open')"), "menu.open", true},
		{"backtick call", third + 3, "x.y", true},
		{"outside any call", 2, "", false},
		{"negative", -1, "", false},
		{"past end", len(text) + 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := KeyAtCursor(text, tt.offset)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyAtCursor_NoCalls(t *testing.T) {
	t.Parallel()

	_, ok := KeyAtCursor(`translate("a.b")`, 12)
	assert.False(t, ok)
	_, ok = KeyAtCursor("t()", 1)
	assert.False(t, ok)
}
