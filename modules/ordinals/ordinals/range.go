package ordinals

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
)

// Range is a half-open interval [Start, End) of ordinal numbers, tracked as
// one bookkeeping entity. Ranges split only at output-value boundaries and
// never merge across a transaction boundary.
type Range struct {
	Start Sat
	End   Sat
}

// NewRange validates Start <= End. Empty ranges are allowed: zero-value
// outputs are recorded as a present-but-empty location.
func NewRange(start, end Sat) (Range, error) {
	if start > end {
		return Range{}, errors.Wrapf(errs.InvalidArgument, "range start %d is after end %d", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Cardinality returns the number of sats in the range.
func (r Range) Cardinality() uint64 {
	return uint64(r.End) - uint64(r.Start)
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether the sat falls inside the range.
func (r Range) Contains(sat Sat) bool {
	return r.Start <= sat && sat < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Cardinality returns the total number of sats in the sequence of ranges.
func Cardinality(ranges []Range) uint64 {
	var total uint64
	for _, r := range ranges {
		total += r.Cardinality()
	}
	return total
}

// Split consumes the first amount sats from the front of the ordered range
// sequence, splitting a range if the amount falls mid-range, and returns the
// consumed front and the remainder. Iterative over an explicit cursor:
// ranges never nest, so no recursion is needed.
func Split(ranges []Range, amount uint64) (front, rest []Range) {
	front = make([]Range, 0, 1)
	i := 0
	for i < len(ranges) && amount > 0 {
		r := ranges[i]
		if r.IsEmpty() {
			i++
			continue
		}
		if r.Cardinality() <= amount {
			front = append(front, r)
			amount -= r.Cardinality()
			i++
			continue
		}
		// amount falls mid-range, split at the boundary
		mid := r.Start + Sat(amount)
		front = append(front, Range{Start: r.Start, End: mid})
		rest = append([]Range{{Start: mid, End: r.End}}, ranges[i+1:]...)
		return front, rest
	}
	return front, ranges[i:]
}
