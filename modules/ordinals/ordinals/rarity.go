package ordinals

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
)

// Rarity is one of the six classification tiers of a sat, ordered from most
// to least abundant. The six names are a stable, versioned vocabulary:
// consumers may assume exactly these identifiers and no others.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
	RarityMythic:    "mythic",
}

func (r Rarity) String() string {
	return rarityNames[r]
}

func (r Rarity) MarshalText() ([]byte, error) {
	name, ok := rarityNames[r]
	if !ok {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid rarity: %d", r)
	}
	return []byte(name), nil
}

// NewRarityFromString parses a rarity tier name.
func NewRarityFromString(s string) (Rarity, error) {
	for rarity, name := range rarityNames {
		if name == s {
			return rarity, nil
		}
	}
	return 0, errors.Wrapf(errs.InvalidArgument, "invalid rarity: %q", s)
}
