package poker

import "fmt"

// Category represents the class of a poker hand, ordered from worst to best.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumCategories is the number of hand categories.
const NumCategories = 10

var categoryNames = [NumCategories]string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
	"Royal Flush",
}

// String returns the english name of the category.
func (c Category) String() string {
	if c < HighCard || c > RoyalFlush {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories lists every category from HighCard to RoyalFlush.
var Categories = [NumCategories]Category{
	HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

// HandValue is the evaluator output. A strictly better hand always has a
// strictly greater value and tied hands have equal values.
type HandValue int

// Powers of 13 used by the base-13 kicker encoding.
const (
	base1 = 13
	base2 = base1 * 13
	base3 = base2 * 13
	base4 = base3 * 13
	base5 = base4 * 13
)

// categorySizes is the number of distinct values each category can encode:
//
//	high card, flush       five kickers         13^5
//	one pair               pair + 3 kickers     13^4
//	two pair               two pairs + kicker   13^3
//	three of a kind        trips + 2 kickers    13^3
//	full house, quads      two ranks            13^2
//	straight               high card 5..A       10
//	straight flush         high card 5..K       9
//	royal flush                                 1
var categorySizes = [NumCategories]HandValue{
	HighCard:      base5,
	OnePair:       base4,
	TwoPair:       base3,
	ThreeOfAKind:  base3,
	Straight:      10,
	Flush:         base5,
	FullHouse:     base2,
	FourOfAKind:   base2,
	StraightFlush: 9,
	RoyalFlush:    1,
}

// Boundary is the half-open value range [Lower, Upper) of a category.
type Boundary struct {
	Lower HandValue
	Upper HandValue
}

// Contains reports whether v falls in the range.
func (b Boundary) Contains(v HandValue) bool {
	return v >= b.Lower && v < b.Upper
}

// boundaries is computed once and never written afterwards, so concurrent
// reads need no synchronization.
var boundaries = computeBoundaries()

// MaxHandValue is one past the largest value the evaluator can return.
var MaxHandValue = boundaries[RoyalFlush].Upper

func computeBoundaries() [NumCategories]Boundary {
	var (
		bounds [NumCategories]Boundary
		total  HandValue
	)
	for _, cat := range Categories {
		bounds[cat] = Boundary{Lower: total, Upper: total + categorySizes[cat]}
		total += categorySizes[cat]
	}
	return bounds
}

// Bounds returns the value range of the category.
func Bounds(c Category) Boundary {
	return boundaries[c]
}

// CategoryOf maps a hand value back to its category.
func CategoryOf(v HandValue) (Category, error) {
	if v < 0 {
		return HighCard, fmt.Errorf("%w: %d", ErrValueOutOfRange, v)
	}
	for _, cat := range Categories {
		if v < boundaries[cat].Upper {
			return cat, nil
		}
	}
	return HighCard, fmt.Errorf("%w: %d", ErrValueOutOfRange, v)
}
