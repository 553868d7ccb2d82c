package ordinals

import (
	"fmt"
	"testing"

	"github.com/gaze-network/ordinals-indexer/common"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/stretchr/testify/assert"
)

func TestNewSat(t *testing.T) {
	test := func(n uint64, valid bool) {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			t.Parallel()
			sat, err := NewSat(n)
			if valid {
				assert.NoError(t, err)
				assert.Equal(t, Sat(n), sat)
			} else {
				assert.ErrorIs(t, err, errs.InvalidArgument)
			}
		})
	}

	test(0, true)
	test(1, true)
	test(Supply-1, true)
	test(Supply, false)
	test(Supply+1, false)
}

func TestSubsidyAtHeight(t *testing.T) {
	test := func(height uint64, expected uint64) {
		t.Run(fmt.Sprint(height), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, SubsidyAtHeight(height))
		})
	}

	test(0, 50*CoinValue)
	test(1, 50*CoinValue)
	test(common.HalvingInterval-1, 50*CoinValue)
	test(common.HalvingInterval, 25*CoinValue)
	test(2*common.HalvingInterval, 1_250_000_000)
	test(32*common.HalvingInterval, 1)
	test(33*common.HalvingInterval, 0)
	test(64*common.HalvingInterval, 0)
}

func TestFirstSatAtHeight(t *testing.T) {
	test := func(height uint64, expected Sat) {
		t.Run(fmt.Sprint(height), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, FirstSatAtHeight(height))
		})
	}

	test(0, 0)
	test(1, 50*CoinValue)
	test(2, 100*CoinValue)
	test(common.HalvingInterval, 10_500_000*CoinValue)
	test(common.HalvingInterval+1, Sat(10_500_000*CoinValue+25*CoinValue))
	test(2*common.HalvingInterval, Sat(15_750_000)*CoinValue)
	// past the last positive subsidy the emission total is the full supply
	test(33*common.HalvingInterval, Supply)
	test(100*common.HalvingInterval, Supply)
}

func TestFirstSatAtHeightMatchesSubsidySum(t *testing.T) {
	// the closed-form schedule must agree with summing block subsidies
	var sum uint64
	for height := uint64(0); height < 3*common.HalvingInterval; height++ {
		assert.Equal(t, Sat(sum), FirstSatAtHeight(height), "height %d", height)
		sum += SubsidyAtHeight(height)
	}
}

func TestSatHeight(t *testing.T) {
	test := func(sat Sat, expected uint64) {
		t.Run(fmt.Sprint(uint64(sat)), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, sat.Height())
		})
	}

	test(0, 0)
	test(50*CoinValue-1, 0)
	test(50*CoinValue, 1)
	test(FirstSatAtHeight(100_000), 100_000)
	test(FirstSatAtHeight(100_000)+1, 100_000)
	test(FirstSatAtHeight(common.HalvingInterval), common.HalvingInterval)
	test(FirstSatAtHeight(common.HalvingInterval)-1, common.HalvingInterval-1)
	test(Supply-1, 33*common.HalvingInterval-1)
}

func TestSatEpochCycleThird(t *testing.T) {
	test := func(sat Sat, epoch, cycle, third uint64) {
		t.Run(fmt.Sprint(uint64(sat)), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, epoch, sat.Epoch())
			assert.Equal(t, cycle, sat.Cycle())
			assert.Equal(t, third, sat.Third())
		})
	}

	test(0, 0, 0, 0)
	test(1, 0, 0, 1)
	test(50*CoinValue, 0, 0, 0)
	test(FirstSatAtHeight(common.HalvingInterval), 1, 0, 0)
	test(FirstSatAtHeight(common.HalvingInterval)+7, 1, 0, 7)
	test(FirstSatAtHeight(CycleInterval), 6, 1, 0)
	test(Supply-1, 32, 5, 0)
}

func TestSatRarity(t *testing.T) {
	test := func(name string, sat Sat, expected Rarity) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, sat.Rarity())
		})
	}

	test("sat zero is mythic", 0, RarityMythic)
	test("mid-block sat is common", 1, RarityCommon)
	test("last sat of genesis block is common", 50*CoinValue-1, RarityCommon)
	test("first sat of block 1 is uncommon", 50*CoinValue, RarityUncommon)
	test("first sat of ordinary block is uncommon", FirstSatAtHeight(123), RarityUncommon)
	test("first sat after difficulty retarget is rare", FirstSatAtHeight(DifficultyAdjustmentInterval), RarityRare)
	test("second sat after difficulty retarget is common", FirstSatAtHeight(DifficultyAdjustmentInterval)+1, RarityCommon)
	test("first sat of halving block is epic", FirstSatAtHeight(common.HalvingInterval), RarityEpic)
	test("first sat of second halving is epic", FirstSatAtHeight(2*common.HalvingInterval), RarityEpic)
	test("first sat of cycle block is legendary", FirstSatAtHeight(CycleInterval), RarityLegendary)
	test("retarget inside halving stays rare", FirstSatAtHeight(common.HalvingInterval+DifficultyAdjustmentInterval), RarityRare)
}

func TestSatRarityDeterministic(t *testing.T) {
	sats := []Sat{0, 1, 50 * CoinValue, FirstSatAtHeight(DifficultyAdjustmentInterval), FirstSatAtHeight(CycleInterval)}
	for _, sat := range sats {
		first := sat.Rarity()
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, sat.Rarity())
		}
	}
}
