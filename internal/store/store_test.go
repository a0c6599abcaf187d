package store

import (
	"testing"

	"i18n-helper/internal/index"
	"i18n-helper/internal/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRow(t *testing.T) {
	t.Parallel()

	row, err := toRow(index.Record{Key: "home.title", Value: "Home", Source: "/ws/en.json"})
	require.NoError(t, err)

	assert.Equal(t, "home.title", row.Key)
	assert.Equal(t, "Home", row.Value)
	assert.Equal(t, "/ws/en.json", row.Source)
	assert.Equal(t, textutil.Hash(`"Home"`), row.ValueHash)
	assert.Equal(t, `"Home"`, row.json)
}

func TestToRow_HashDistinguishesTypes(t *testing.T) {
	t.Parallel()

	str, err := toRow(index.Record{Key: "n", Value: "1"})
	require.NoError(t, err)
	num, err := toRow(index.Record{Key: "n", Value: float64(1)})
	require.NoError(t, err)

	assert.NotEqual(t, str.ValueHash, num.ValueHash)
}
