package ordinals

import (
	"testing"

	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/stretchr/testify/assert"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange(5, 10)
	assert.NoError(t, err)
	assert.Equal(t, Range{Start: 5, End: 10}, r)

	empty, err := NewRange(7, 7)
	assert.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = NewRange(10, 5)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestRangeCardinality(t *testing.T) {
	assert.Equal(t, uint64(5), Range{Start: 5, End: 10}.Cardinality())
	assert.Equal(t, uint64(0), Range{Start: 7, End: 7}.Cardinality())
	assert.Equal(t, uint64(25), Cardinality([]Range{{Start: 0, End: 10}, {Start: 20, End: 35}}))
	assert.Equal(t, uint64(0), Cardinality(nil))
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 5, End: 10}
	assert.False(t, r.Contains(4))
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(9))
	assert.False(t, r.Contains(10))
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[5,10)", Range{Start: 5, End: 10}.String())
}

func TestSplit(t *testing.T) {
	test := func(name string, ranges []Range, amount uint64, expectedFront, expectedRest []Range) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			front, rest := Split(ranges, amount)
			assert.Equal(t, expectedFront, front)
			assert.Equal(t, Cardinality(expectedRest), Cardinality(rest))
			assert.Equal(t, nonEmpty(expectedRest), nonEmpty(rest))
		})
	}

	test("exact single range",
		[]Range{{Start: 0, End: 10}}, 10,
		[]Range{{Start: 0, End: 10}}, nil)
	test("mid-range split",
		[]Range{{Start: 0, End: 10}}, 4,
		[]Range{{Start: 0, End: 4}}, []Range{{Start: 4, End: 10}})
	test("spans whole range then splits next",
		[]Range{{Start: 0, End: 10}, {Start: 50, End: 60}}, 15,
		[]Range{{Start: 0, End: 10}, {Start: 50, End: 55}}, []Range{{Start: 55, End: 60}})
	test("amount zero takes nothing",
		[]Range{{Start: 0, End: 10}}, 0,
		[]Range{}, []Range{{Start: 0, End: 10}})
	test("skips empty ranges",
		[]Range{{Start: 3, End: 3}, {Start: 5, End: 8}}, 2,
		[]Range{{Start: 5, End: 7}}, []Range{{Start: 7, End: 8}})
	test("consumes everything",
		[]Range{{Start: 0, End: 5}, {Start: 9, End: 12}}, 8,
		[]Range{{Start: 0, End: 5}, {Start: 9, End: 12}}, nil)

	t.Run("amount larger than supply of ranges", func(t *testing.T) {
		t.Parallel()
		front, rest := Split([]Range{{Start: 0, End: 5}}, 100)
		assert.Equal(t, []Range{{Start: 0, End: 5}}, front)
		assert.Empty(t, rest)
	})
}

func TestSplitSequential(t *testing.T) {
	// repeated splits must walk the ranges front to back without losing sats
	ranges := []Range{{Start: 0, End: 100}, {Start: 500, End: 520}}
	total := Cardinality(ranges)

	var consumed uint64
	var next Sat
	for _, amount := range []uint64{30, 70, 15, 5} {
		front, rest := Split(ranges, amount)
		assert.Equal(t, amount, Cardinality(front))
		assert.Equal(t, next, front[0].Start)
		consumed += amount
		assert.Equal(t, total-consumed, Cardinality(rest))
		if len(rest) > 0 {
			next = rest[0].Start
		}
		ranges = rest
	}
	assert.Empty(t, nonEmpty(ranges))
}

func nonEmpty(ranges []Range) []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}
