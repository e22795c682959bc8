package poker

import (
	"fmt"
	"slices"
)

// rankMask covers the 13 rank bits of one suit in a card set's bit space.
const rankMask = 1<<NumRanks - 1

// HandResult represents a complete evaluation of a hand.
type HandResult struct {
	Value       HandValue
	Category    Category
	Description string
}

// rankBin groups the cards of one rank.
type rankBin struct {
	rank  Rank
	count int
	bits  uint64
}

// Evaluate returns the value of the best five card poker hand contained in
// hand, which must hold between 5 and 7 cards. The input set is not
// modified.
func Evaluate(hand *CardSet) (HandValue, error) {
	if hand == nil {
		return 0, fmt.Errorf("%w: nil hand", ErrInvalidHandSize)
	}
	if n := hand.Len(); n < 5 || n > 7 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidHandSize, n)
	}

	sorted := hand.Copy()
	sorted.SortByRankDesc()
	cards := sorted.cards

	bins := rankHistogram(cards)
	value, grouped := groupedValue(cards, bins)

	// A full house or four of a kind can't coexist with a flush or a
	// straight in seven cards, and both outrank them anyway.
	if !grouped || value < boundaries[FullHouse].Lower {
		suitProduct, _ := sorted.SuitProduct()
		if v, ok := straightOrFlushValue(cards, sorted.bits, suitProduct); ok && (!grouped || v > value) {
			value, grouped = v, true
		}
	}

	if !grouped {
		value = boundaries[HighCard].Lower + kicker(cards, 0, 5)
	}
	return value, nil
}

// rankHistogram bins the rank sorted cards and orders the bins by count,
// then by rank, both descending. bins[0] is the largest group.
func rankHistogram(cards []Card) []rankBin {
	bins := make([]rankBin, 0, len(cards))
	for _, c := range cards {
		if n := len(bins); n > 0 && bins[n-1].rank == c.rank {
			bins[n-1].count++
			bins[n-1].bits |= c.bit
			continue
		}
		bins = append(bins, rankBin{rank: c.rank, count: 1, bits: c.bit})
	}
	// bins are already in descending rank order
	slices.SortStableFunc(bins, func(a, b rankBin) int {
		return b.count - a.count
	})
	return bins
}

// groupedValue scores four of a kind, full house, three of a kind, two pair
// and one pair. It reports false when no rank repeats.
func groupedValue(cards []Card, bins []rankBin) (HandValue, bool) {
	first := bins[0]
	r0 := HandValue(first.rank - Two)

	var second rankBin
	if len(bins) > 1 {
		second = bins[1]
	}
	r1 := HandValue(second.rank) - HandValue(Two)

	switch {
	case first.count == 4:
		return boundaries[FourOfAKind].Lower + base1*r0 + kicker(cards, first.bits, 1), true
	case first.count == 3 && second.count >= 2:
		return boundaries[FullHouse].Lower + base1*r0 + r1, true
	case first.count == 3:
		return boundaries[ThreeOfAKind].Lower + base2*r0 + kicker(cards, first.bits, 2), true
	case first.count == 2 && second.count == 2:
		return boundaries[TwoPair].Lower + base2*r0 + base1*r1 + kicker(cards, first.bits|second.bits, 1), true
	case first.count == 2:
		return boundaries[OnePair].Lower + base3*r0 + kicker(cards, first.bits, 3), true
	}
	return 0, false
}

// straightOrFlushValue scores royal flush, straight flush, flush and
// straight.
func straightOrFlushValue(cards []Card, setBits, suitProduct uint64) (HandValue, bool) {
	if suit, ok := flushedSuit(suitProduct); ok {
		suitBits := uint64(rankMask) << (uint(suit) * NumRanks)
		if high, ok := straightHigh(uint16(setBits >> (uint(suit) * NumRanks) & rankMask)); ok {
			if high == Ace {
				return boundaries[RoyalFlush].Lower, true
			}
			return boundaries[StraightFlush].Lower + HandValue(high-Five), true
		}
		// only one suit can hold five of seven cards, so a flush beats any
		// straight found in the other suits
		return boundaries[Flush].Lower + kicker(cards, ^suitBits, 5), true
	}

	// fold the four suits onto one 13 bit rank mask
	ranks := uint16((setBits | setBits>>NumRanks | setBits>>(2*NumRanks) | setBits>>(3*NumRanks)) & rankMask)
	if high, ok := straightHigh(ranks); ok {
		return boundaries[Straight].Lower + HandValue(high-Five), true
	}
	return 0, false
}

// flushedSuit finds the suit whose prime divides the suit product at least
// five times.
func flushedSuit(suitProduct uint64) (Suit, bool) {
	for suit := Clubs; suit <= Spades; suit++ {
		if suitProduct%flushComposites[suit] == 0 {
			return suit, true
		}
	}
	return 0, false
}

// straightHigh returns the high card of the best straight in a 13 bit rank
// mask (bit 0 = Two). The Ace also plays low in the wheel A-2-3-4-5, whose
// high card is the Five.
func straightHigh(ranks uint16) (Rank, bool) {
	// bit 0 is the low ace, bit i is rank i+1
	ext := uint32(ranks)<<1 | uint32(ranks>>(NumRanks-1))&1
	const window = 0x1f
	for high := Ace; high >= Five; high-- {
		shift := uint(high) - 5
		if ext>>shift&window == window {
			return high, true
		}
	}
	return 0, false
}

// kicker folds up to width of the highest cards not in excluded into a base
// 13 number, most significant card first. Missing cards count as zero digits
// so the result always has width digits.
func kicker(cards []Card, excluded uint64, width int) HandValue {
	var (
		value HandValue
		taken int
	)
	for _, c := range cards {
		if taken == width {
			break
		}
		if c.bit&excluded != 0 {
			continue
		}
		value = base1*value + HandValue(c.rank-Two)
		taken++
	}
	for ; taken < width; taken++ {
		value *= base1
	}
	return value
}

// EvaluateHand evaluates a player's best hand from their hole cards and the
// community cards.
func EvaluateHand(holeCards, communityCards *CardSet) (HandResult, error) {
	if holeCards == nil || communityCards == nil {
		return HandResult{}, fmt.Errorf("%w: nil hole or community cards", ErrInvalidHandSize)
	}
	if holeCards.bits&communityCards.bits != 0 {
		return HandResult{}, fmt.Errorf("%w: hole cards %s overlap board %s",
			ErrDuplicateCard, holeCards, communityCards)
	}
	value, err := Evaluate(holeCards.Union(communityCards))
	if err != nil {
		return HandResult{}, err
	}
	return NewHandResult(value)
}

// NewHandResult decodes a hand value into its category and description.
func NewHandResult(value HandValue) (HandResult, error) {
	cat, err := CategoryOf(value)
	if err != nil {
		return HandResult{}, err
	}
	return HandResult{
		Value:       value,
		Category:    cat,
		Description: describe(cat, value-boundaries[cat].Lower),
	}, nil
}

// Describe returns a human-readable description of a hand value, such as
// "Two Pair, Aces and Jacks".
func Describe(value HandValue) (string, error) {
	res, err := NewHandResult(value)
	if err != nil {
		return "", err
	}
	return res.Description, nil
}

// digit returns the i-th base 13 digit of raw (0 = least significant) as a
// rank.
func digit(raw HandValue, i int) Rank {
	for ; i > 0; i-- {
		raw /= base1
	}
	return Rank(raw%base1) + Two
}

func describe(cat Category, raw HandValue) string {
	switch cat {
	case HighCard:
		return fmt.Sprintf("High Card, %s", digit(raw, 4).Name())
	case OnePair:
		return fmt.Sprintf("Pair of %s", digit(raw, 3).Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", digit(raw, 2).Plural(), digit(raw, 1).Plural())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", digit(raw, 2).Plural())
	case Straight:
		return fmt.Sprintf("Straight, %s High", (Rank(raw) + Five).Name())
	case Flush:
		return fmt.Sprintf("Flush, %s High", digit(raw, 4).Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", digit(raw, 1).Plural(), digit(raw, 0).Plural())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", digit(raw, 1).Plural())
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s High", (Rank(raw) + Five).Name())
	default:
		return "Royal Flush"
	}
}

// CompareHands compares two hand values and returns:
// -1 if handA < handB (handA is worse)
// 0 if handA == handB (tie)
// 1 if handA > handB (handA is better)
func CompareHands(handA, handB HandValue) int {
	switch {
	case handA < handB:
		return -1
	case handA > handB:
		return 1
	}
	return 0
}
