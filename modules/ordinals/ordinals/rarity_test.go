package ordinals

import (
	"testing"

	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/stretchr/testify/assert"
)

func TestRarityString(t *testing.T) {
	assert.Equal(t, "common", RarityCommon.String())
	assert.Equal(t, "uncommon", RarityUncommon.String())
	assert.Equal(t, "rare", RarityRare.String())
	assert.Equal(t, "epic", RarityEpic.String())
	assert.Equal(t, "legendary", RarityLegendary.String())
	assert.Equal(t, "mythic", RarityMythic.String())
}

func TestRarityOrdering(t *testing.T) {
	assert.True(t, RarityCommon < RarityUncommon)
	assert.True(t, RarityUncommon < RarityRare)
	assert.True(t, RarityRare < RarityEpic)
	assert.True(t, RarityEpic < RarityLegendary)
	assert.True(t, RarityLegendary < RarityMythic)
}

func TestNewRarityFromString(t *testing.T) {
	for rarity, name := range rarityNames {
		parsed, err := NewRarityFromString(name)
		assert.NoError(t, err)
		assert.Equal(t, rarity, parsed)
	}

	_, err := NewRarityFromString("ultra")
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestRarityMarshalText(t *testing.T) {
	b, err := RarityEpic.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "epic", string(b))

	_, err = Rarity(42).MarshalText()
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
