package substring

import (
	"errors"
	"fmt"

	"github.com/coregx/sigharness/hexcodec"
	"github.com/coregx/sigharness/pattern"
)

// ErrZeroStride is returned when Extract is called with a non-positive
// stride.
var ErrZeroStride = errors.New("substring: stride must be >= 1")

// ErrUnsupportedWidth is returned when Extract is called with a width that
// is not one of 1, 2, 4, or 8 bytes.
var ErrUnsupportedWidth = errors.New("substring: width must be one of 1, 2, 4, 8")

// Extract slides a window of width l bytes, stride g bytes, across every
// pattern in patterns, producing the deduplicated SubstringBag(l, g). A
// trailing fragment shorter than l is dropped without padding; patterns
// shorter than l contribute nothing.
//
// l is a runtime scenario parameter, so Extract type-switches internally to
// pick the correctly-typed TypedBag[T] and returns it behind the
// width-erased Bag interface.
func Extract(patterns *pattern.Set, l, g int) (Bag, error) {
	if g < 1 {
		return nil, ErrZeroStride
	}
	switch l {
	case 1:
		return extractTyped[uint8](patterns, l, g)
	case 2:
		return extractTyped[uint16](patterns, l, g)
	case 4:
		return extractTyped[uint32](patterns, l, g)
	case 8:
		return extractTyped[uint64](patterns, l, g)
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedWidth, l)
	}
}

func extractTyped[T Width](patterns *pattern.Set, l, g int) (Bag, error) {
	bag := NewTypedBag[T]()

	for _, rec := range patterns.All() {
		n := len(rec.Bytes)
		for i := 0; i+l <= n; i += g {
			window := rec.Bytes[i : i+l]
			value := T(hexcodec.BytesToUint(window))
			bag.Insert(value, rec.SIDs)
		}
	}

	return &erasedBag[T]{bag: bag, width: l}, nil
}

// ExpectedCount returns the number of windows extract would produce for a
// single pattern of length n with window l and stride g, per the formula
// max(0, floor((n - l) / g) + 1). It is exposed for tests asserting
// extraction completeness.
func ExpectedCount(n, l, g int) int {
	if n < l {
		return 0
	}
	return (n-l)/g + 1
}
