package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelByID(t *testing.T) {
	ch, ok := ChannelByID("rai1")
	require.True(t, ok)
	assert.Equal(t, "Rai 1", ch.Name)

	_, ok = ChannelByID("nope")
	assert.False(t, ok)
}

func TestChannelsByGenre(t *testing.T) {
	all := ChannelsByGenre("")
	assert.Equal(t, len(Channels()), len(all))

	rai := ChannelsByGenre("Rai")
	require.NotEmpty(t, rai)
	for _, ch := range rai {
		assert.Contains(t, ch.Genres, "Rai")
	}
	assert.Less(t, len(rai), len(all))
}

func TestChannelRegistryIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, ch := range Channels() {
		assert.False(t, seen[ch.ID], "duplicate channel id %s", ch.ID)
		seen[ch.ID] = true
		assert.NotEmpty(t, ch.Name)
		assert.NotEmpty(t, ch.Genres)
	}
}
