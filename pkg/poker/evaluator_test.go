package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, hand string) HandValue {
	t.Helper()
	v, err := Evaluate(MustParseCardSet(hand))
	require.NoError(t, err, hand)
	return v
}

func category(t *testing.T, hand string) Category {
	t.Helper()
	cat, err := CategoryOf(value(t, hand))
	require.NoError(t, err, hand)
	return cat
}

func TestEvaluateCategory(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want Category
	}{
		{"high card", "Ac Kh Qs Jd 9d 8s 7c", HighCard},
		{"one pair", "Ac Ah Js 9d 7d 5s 2c", OnePair},
		{"two pair", "Ac Ah Js Jd 7d 5s 2c", TwoPair},
		{"three pairs", "Ac Ah Js Jd 7d 7s 2c", TwoPair},
		{"three of a kind", "7c 7h Js 9d 7d 5s 2c", ThreeOfAKind},
		{"straight", "8h 7h 6s 5d 4d 4s 2c", Straight},
		{"straight above high card", "8h 7h 6s 5d 4d 4s 10c", Straight},
		{"straight with two pairs inside", "9h 8h 8s 7d 7c 6s 5c", Straight},
		{"ace-high straight", "Ac Kd Qs Js 10d 3c 2c", Straight},
		{"ace-low straight", "Qs Js 5s 4d 3c 2c Ac", Straight},
		{"flush", "4c 5c 9c 10c Kc 2d 4h", Flush},
		{"flush beats straight", "4c 5c 6c 7d 8c Jc 2h", Flush},
		{"full house", "Ac Ah Js Jd Ad 5s 2c", FullHouse},
		{"two trips", "Kc Kh Kd 9s 9d 9c 2c", FullHouse},
		{"four of a kind", "Ac Ah As Jd Ad 5s 2c", FourOfAKind},
		{"four of a kind over trips", "Ac Ah As Ad Jd Js Jc", FourOfAKind},
		{"straight flush", "8d 7d 6d 5d 4d 4s 4c", StraightFlush},
		{"prefer suited low straight", "Ac Kc Qd Jd 10d 9d 8d", StraightFlush},
		{"steel wheel", "5h 4h 3h 2h Ah Kh Qh", StraightFlush},
		{"royal flush", "Ac Kc Qc Jc 10c 2h 4d", RoyalFlush},
		{"five card high card", "2c 4d 6h 8s 10c", HighCard},
		{"six card pair", "2c 2d 6h 8s 10c Kh", OnePair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, category(t, tt.hand))
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	// each pair is (worse, better)
	tests := []struct {
		name          string
		worse, better string
	}{
		{"high card below one pair", "Ac Kh Qs Jd 9d 8s 7c", "2c 2h 3s 4d 5d 6s 8c"},
		{"one pair below two pair", "Ac Ah Js 9d 7d 5s 2c", "Ac Ah Js Jd 7d 5s 2c"},
		{"one pair kickers", "Ac Ah Js 9d 7d 5s 2c", "Ac Ah Js 9d 8d 5s 2c"},
		{"one pair rank beats kickers", "Kc Kh Qs Jd 9d 5s 2c", "Ac Ah 4s 3d 7d 5s 2c"},
		{"two pair below three of a kind", "Ac Ah Js Jd 7d 5s 2c", "7c 7h Js 9d 7d 5s 2c"},
		{"two pair top pair", "Kc Kh Js Jd 7d 5s 2c", "Ac Ah Js Jd 8d 5s 2c"},
		{"two pair bottom pair", "Ac Ah 10s 10d 7d 5s 2c", "Ac Ah Js Jd 8d 5s 2c"},
		{"two pair kicker", "Ac Ah Js Jd 7d 5s 2c", "Ac Ah Js Jd 8d 5s 2c"},
		{"three of a kind below straight", "Ac Ah As Jd 7d 5s 2c", "7c 6h 5s 4d 3d 2s 2c"},
		{"three of a kind first kicker", "Ac Ah As Jd 7d 5s 2c", "Ac Ah As Qd 7d 5s 2c"},
		{"three of a kind second kicker", "Ac Ah As Jd 7d 5s 2c", "Ac Ah As Jd 8d 5s 2c"},
		{"wheel below six high straight", "5c 4d 3h 2s Ac Kd 9h", "6c 5d 4h 3s 2c Kd 9h"},
		{"straight below flush", "8h 7h 6s 5d 4d 4s 2c", "4c 5c 9c 10c Kc 2d 4h"},
		{"flush high card", "2c 5c 8c 10c Kc 2d 4h", "2c 5c 8c 10c Ac 2d 4h"},
		{"flush second card", "2c 5c 8c 10c Kc 2d 4h", "2c 5c 8c Jc Kc 2d 4h"},
		{"flush third card", "2c 5c 8c 10c Kc 2d 4h", "2c 5c 9c 10c Kc 2d 4h"},
		{"flush fourth card", "2c 5c 8c 10c Kc 2d 4h", "2c 6c 8c 10c Kc 2d 4h"},
		{"flush fifth card", "2c 5c 8c 10c Kc 2d 4h", "3c 5c 8c 10c Kc 2d 4h"},
		{"flush below full house", "4c 5c 9c 10c Kc 2d 4h", "4c 4d 4h 5d 5c 6d 8d"},
		{"lowest full house", "4c 5c 9c 10c Kc 2d 4h", "2c 2d 2h 3d 3c"},
		{"full house below four of a kind", "Ac Ah Js Jd Ad 5s 2c", "7c 7h 7s 9d 7d 5s 2c"},
		{"full house trips", "Kc Kh Kd Js Jd 5s 2c", "Ac Ah Ad Js Jd 5s 2c"},
		{"full house trips over pair", "Kc Kh Kd As Ad 5s 2c", "Ac Ah Ad Js Jd 5s 2c"},
		{"full house fill", "Kc Kh Kd Js Jd 5s 2c", "Kc Kh Kd Qs Qd 5s 2c"},
		{"four of a kind below straight flush", "Ac Ah As Jd Ad 5s 2c", "8d 7d 6d 5d 4d 4s 4c"},
		{"four of a kind kicker", "Ac Ah As Ad Jd 5s 2c", "Ac Ah As Ad Qd 5s 2c"},
		{"four of a kind rank", "Kc Kh Ks Kd Ad 5s 2c", "Ac Ah As Ad 2d 3s 4c"},
		{"straight flush below royal flush", "8d 7d 6d 5d 4d 4s 4c", "Ac Kc Qc Jc 10c 9c 3c"},
		{"straight flush rank", "8d 7d 6d 5d 4d 4s 4c", "9d 8d 7d 6d 5d 4s 4c"},
		{"steel wheel below six high", "5h 4h 3h 2h Ah", "6h 5h 4h 3h 2h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worse, better := value(t, tt.worse), value(t, tt.better)
			assert.Less(t, worse, better)
			assert.Equal(t, -1, CompareHands(worse, better))
			assert.Equal(t, 1, CompareHands(better, worse))
		})
	}
}

func TestEvaluateIgnoresUnusedCards(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"two pair", "Ac Ah Js Jd 7d 5s 2c", "Ac Ah Js Jd 7d 6s 2c"},
		{"three of a kind low card", "Ac Ah As Jd 7d 5s 2c", "Ac Ah As Jd 7d 6s 2c"},
		{"three of a kind lowest card", "Ac Ah As Jd 7d 5s 2c", "Ac Ah As Jd 7d 5s 3c"},
		{"flush sixth card", "2c 5c 8c 10c Kc Qc 4h", "3c 5c 8c 10c Kc Qc 4h"},
		{"straight extra card", "9c 8d 7h 6s 5c 2d 2h", "9c 8d 7h 6s 5c 3d 3h"},
		{"suits don't matter", "Ac Ah Js 9d 7d 5s 2c", "Ad As Jh 9c 7h 5d 2s"},
		{"order doesn't matter", "Ac Ah Js 9d 7d 5s 2c", "2c 5s 7d 9d Js Ah Ac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := value(t, tt.a), value(t, tt.b)
			assert.Equal(t, a, b)
			assert.Equal(t, 0, CompareHands(a, b))
		})
	}
}

func TestEvaluateHandSize(t *testing.T) {
	for _, hand := range []string{"", "Ac Kd Qh Js", "Ac Kd Qh Js 10s 9s 8s 7s"} {
		_, err := Evaluate(MustParseCardSet(hand))
		assert.ErrorIs(t, err, ErrInvalidHandSize, hand)
	}
	_, err := Evaluate(nil)
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	hand := MustParseCardSet("2c Ah 10d Ac 5s 7h 9c")
	before := hand.String()
	_, err := Evaluate(hand)
	require.NoError(t, err)
	assert.Equal(t, before, hand.String())
}

func TestCategoryBoundaries(t *testing.T) {
	var prev Boundary
	for i, cat := range Categories {
		b := Bounds(cat)
		assert.Less(t, b.Lower, b.Upper, cat.String())
		if i > 0 {
			assert.Equal(t, prev.Upper, b.Lower, cat.String())
		}
		got, err := CategoryOf(b.Lower)
		require.NoError(t, err)
		assert.Equal(t, cat, got)
		got, err = CategoryOf(b.Upper - 1)
		require.NoError(t, err)
		assert.Equal(t, cat, got)
		prev = b
	}
	assert.Equal(t, HandValue(0), Bounds(HighCard).Lower)
	assert.Equal(t, MaxHandValue, Bounds(RoyalFlush).Upper)

	_, err := CategoryOf(MaxHandValue)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
	_, err = CategoryOf(-1)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		hand string
		want string
	}{
		{"Ac Kh Qs Jd 9d 8s 7c", "High Card, Ace"},
		{"Ac Ah Js 9d 7d 5s 2c", "Pair of Aces"},
		{"Ac Ah Js Jd 7d 5s 2c", "Two Pair, Aces and Jacks"},
		{"6c 6h 6s 9d 7d 5s 2c", "Three of a Kind, Sixes"},
		{"Qs Js 5s 4d 3c 2c Ac", "Straight, Five High"},
		{"4c 5c 9c 10c Kc 2d 4h", "Flush, King High"},
		{"Kc Kh Kd Js Jd 5s 2c", "Full House, Kings full of Jacks"},
		{"Ac Ah As Jd Ad 5s 2c", "Four of a Kind, Aces"},
		{"9d 8d 7d 6d 5d 4s 4c", "Straight Flush, Nine High"},
		{"Ac Kc Qc Jc 10c 2h 4d", "Royal Flush"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			desc, err := Describe(value(t, tt.hand))
			require.NoError(t, err)
			assert.Equal(t, tt.want, desc)
		})
	}
}

func TestEvaluateHand(t *testing.T) {
	hole := MustParseCardSet("Ah Kh")
	board := MustParseCardSet("Qh Jh 10h 3c 4d")

	res, err := EvaluateHand(hole, board)
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, res.Category)
	assert.Equal(t, "Royal Flush", res.Description)
	assert.Equal(t, 2, hole.Len(), "hole cards must not be modified")

	_, err = EvaluateHand(MustParseCardSet("Qh 2c"), board)
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = EvaluateHand(nil, board)
	assert.ErrorIs(t, err, ErrInvalidHandSize)
	_, err = EvaluateHand(hole, nil)
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}

// TestEvaluateAllFiveCardHands walks every five card hand and checks the
// category frequencies and the number of distinct values per category.
func TestEvaluateAllFiveCardHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive enumeration in short mode")
	}

	wantCounts := [NumCategories]int{
		HighCard:      1302540,
		OnePair:       1098240,
		TwoPair:       123552,
		ThreeOfAKind:  54912,
		Straight:      10200,
		Flush:         5108,
		FullHouse:     3744,
		FourOfAKind:   624,
		StraightFlush: 36,
		RoyalFlush:    4,
	}
	wantDistinct := [NumCategories]int{
		HighCard:      1277,
		OnePair:       2860,
		TwoPair:       858,
		ThreeOfAKind:  858,
		Straight:      10,
		Flush:         1277,
		FullHouse:     156,
		FourOfAKind:   156,
		StraightFlush: 9,
		RoyalFlush:    1,
	}

	var counts [NumCategories]int
	distinct := make(map[HandValue]Category)

	deck := FullDeck().Cards()
	for a := 0; a < DeckSize; a++ {
		for b := a + 1; b < DeckSize; b++ {
			for c := b + 1; c < DeckSize; c++ {
				for d := c + 1; d < DeckSize; d++ {
					for e := d + 1; e < DeckSize; e++ {
						v, err := Evaluate(NewCardSet(deck[a], deck[b], deck[c], deck[d], deck[e]))
						require.NoError(t, err)
						cat, err := CategoryOf(v)
						require.NoError(t, err)
						counts[cat]++
						distinct[v] = cat
					}
				}
			}
		}
	}

	assert.Equal(t, wantCounts, counts)

	var gotDistinct [NumCategories]int
	for _, cat := range distinct {
		gotDistinct[cat]++
	}
	assert.Equal(t, wantDistinct, gotDistinct)
	assert.Len(t, distinct, 7462)
}

func BenchmarkEvaluate7(b *testing.B) {
	rng := testRNG()
	hands := make([]*CardSet, 1024)
	for i := range hands {
		hands[i], _ = RandomCardSet(7, rng)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate(hands[i%len(hands)])
	}
}
