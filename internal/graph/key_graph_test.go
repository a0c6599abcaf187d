package graph

import (
	"testing"

	"i18n-helper/internal/index"

	"github.com/stretchr/testify/assert"
)

func TestToRows(t *testing.T) {
	t.Parallel()

	rows := toRows([]index.Record{
		{Key: "greet", Value: "Hello", Source: "/ws/en.json"},
		{Key: "count", Value: float64(2), Source: "/ws/en.json"},
	})

	assert.Equal(t, []map[string]any{
		{"key": "greet", "value": "Hello", "source": "/ws/en.json"},
		{"key": "count", "value": "2", "source": "/ws/en.json"},
	}, rows)
}

func TestSourceFiles(t *testing.T) {
	t.Parallel()

	files := sourceFiles([]index.Record{
		{Key: "a", Source: "/ws/ko.json"},
		{Key: "b", Source: "/ws/en.json"},
		{Key: "c", Source: "/ws/ko.json"},
	})
	assert.Equal(t, []string{"/ws/en.json", "/ws/ko.json"}, files)
}
