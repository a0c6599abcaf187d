package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "안녕...", Truncate("안녕하세요", 2))
}

func TestHash(t *testing.T) {
	t.Parallel()

	assert.Len(t, Hash("greet"), 64)
	assert.Equal(t, Hash("greet"), Hash("greet"))
	assert.NotEqual(t, Hash("greet"), Hash("greet "))
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", Display("Hello"))
	assert.Equal(t, "3", Display(float64(3)))
	assert.Equal(t, "1.5", Display(1.5))
	assert.Equal(t, "true", Display(true))
	assert.Equal(t, "", Display(nil))
}
