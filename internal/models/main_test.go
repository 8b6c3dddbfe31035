package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryType(t *testing.T) {
	for _, valid := range []string{"win", "loss", "ofg"} {
		got, err := ParseEntryType(valid)
		require.NoError(t, err)
		assert.Equal(t, EntryType(valid), got)
	}

	for _, invalid := range []string{"", "WIN", "draw", "growth"} {
		_, err := ParseEntryType(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestMetaFor_CoversEveryType(t *testing.T) {
	for _, typ := range EntryTypes {
		meta, ok := MetaFor(typ)
		require.True(t, ok, "missing metadata for %s", typ)
		assert.NotEmpty(t, meta.Icon)
		assert.NotEmpty(t, meta.Color)
		assert.NotEmpty(t, meta.Subtitle)
	}

	_, ok := MetaFor(EntryType("draw"))
	assert.False(t, ok)
}
