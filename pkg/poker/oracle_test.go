package poker

import (
	"testing"

	chpoker "github.com/chehsunliu/poker"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// toChehsunliu converts a set to the chehsunliu/poker card type. That
// library writes ten as "T".
func toChehsunliu(cs *CardSet) []chpoker.Card {
	out := make([]chpoker.Card, 0, cs.Len())
	for _, c := range cs.Cards() {
		rank := c.Rank().String()
		if c.Rank() == Ten {
			rank = "T"
		}
		out = append(out, chpoker.NewCard(rank+c.Suit().String()))
	}
	return out
}

// chehsunliuCategory converts a chehsunliu rank class to our category. The
// library has no royal flush class, so straight flushes are mapped by rank:
// rank 1 is the royal flush.
func chehsunliuCategory(rank int32) Category {
	switch chpoker.RankClass(rank) {
	case 1:
		if rank == 1 {
			return RoyalFlush
		}
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return OnePair
	default:
		return HighCard
	}
}

// TestEvaluateMatchesReference compares categories and pairwise ordering of
// random hands against an independent evaluator, in which lower ranks are
// better.
func TestEvaluateMatchesReference(t *testing.T) {
	rng := testRNG()
	const trials = 20000

	for i := 0; i < trials; i++ {
		a, err := RandomCardSet(5+rng.Intn(3), rng)
		require.NoError(t, err)
		b, err := RandomCardSet(5+rng.Intn(3), rng)
		require.NoError(t, err)

		va, err := Evaluate(a)
		require.NoError(t, err)
		vb, err := Evaluate(b)
		require.NoError(t, err)

		ra := chpoker.Evaluate(toChehsunliu(a))
		rb := chpoker.Evaluate(toChehsunliu(b))

		catA, err := CategoryOf(va)
		require.NoError(t, err)
		require.Equal(t, chehsunliuCategory(ra), catA, "category of %s\n%s", a, spew.Sdump(va, ra))

		var want int
		switch {
		case ra < rb:
			want = 1
		case ra > rb:
			want = -1
		}
		require.Equal(t, want, CompareHands(va, vb),
			"comparing %s with %s\n%s", a, b, spew.Sdump(va, vb, ra, rb))
	}
}
