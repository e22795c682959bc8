package poker

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"math/rand"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = NumSuits * NumRanks

// MaxProductCards is the largest set size for which the rank and suit prime
// products fit exactly in 64 bits (59^10 < 2^64).
const MaxProductCards = 10

// CardSet is an ordered collection of distinct cards. Alongside the cards it
// keeps the union of their position bits and the products of their rank and
// suit primes, which makes membership, equality and flush tests O(1).
//
// The zero value is an empty set ready to use. A CardSet is not safe for
// concurrent mutation.
type CardSet struct {
	cards []Card
	bits  uint64

	rankProduct uint64
	suitProduct uint64
	// stale is set while the set holds more than MaxProductCards cards and
	// the products can not be represented.
	stale bool
}

// NewCardSet creates a set holding the given cards. Duplicates are dropped.
func NewCardSet(cards ...Card) *CardSet {
	cs := &CardSet{
		cards:       make([]Card, 0, len(cards)),
		rankProduct: 1,
		suitProduct: 1,
	}
	cs.Add(cards...)
	return cs
}

// ParseCardSet parses a list of card tokens. Tokens may be separated by
// whitespace or commas, or written back to back ("AsKd"). Suit glyphs as
// produced by PrettyString are accepted.
func ParseCardSet(text string) (*CardSet, error) {
	cs := NewCardSet()
	i := 0
	for i < len(text) {
		ch := text[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ',' {
			i++
			continue
		}

		// rank is "10" or a single character, followed by a suit letter or
		// glyph
		end := i + 1
		if strings.HasPrefix(text[i:], "10") {
			end = i + 2
		}
		if end >= len(text) {
			return nil, fmt.Errorf("%w: truncated token %q", ErrParse, text[i:])
		}
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
		c, err := ParseCard(text[i:end])
		if err != nil {
			return nil, err
		}
		cs.Add(c)
		i = end
	}
	return cs, nil
}

// MustParseCardSet is like ParseCardSet but panics on malformed input.
func MustParseCardSet(text string) *CardSet {
	cs, err := ParseCardSet(text)
	if err != nil {
		panic(err)
	}
	return cs
}

// FullDeck returns the 52 cards in suit-major order: 2c..Ac, 2d..Ad, 2h..Ah,
// 2s..As.
func FullDeck() *CardSet {
	cs := &CardSet{
		cards:       make([]Card, 0, DeckSize),
		rankProduct: 1,
		suitProduct: 1,
	}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cs.Add(newCard(rank, suit))
		}
	}
	return cs
}

// RandomCardSet shuffles a fresh deck with rng and returns its first n cards.
// A nil rng is replaced by a time seeded source.
func RandomCardSet(n int, rng *rand.Rand) (*CardSet, error) {
	if n < 0 || n > DeckSize {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrNotEnoughCards, n, DeckSize)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	deck := FullDeck()
	deck.Shuffle(rng)
	return deck.Subset(0, n)
}

// Random returns n cards drawn from a freshly shuffled deck using a time
// seeded source.
func Random(n int) (*CardSet, error) {
	return RandomCardSet(n, nil)
}

// Add appends the cards that are not yet members. Invalid (zero) cards are
// ignored.
func (cs *CardSet) Add(cards ...Card) {
	for _, c := range cards {
		if !c.IsValid() || cs.bits&c.bit != 0 {
			continue
		}
		if len(cs.cards) == 0 {
			// the zero CardSet starts with empty products of 0
			cs.rankProduct, cs.suitProduct, cs.stale = 1, 1, false
		}
		cs.cards = append(cs.cards, c)
		cs.bits |= c.bit

		if cs.stale {
			continue
		}
		if len(cs.cards) > MaxProductCards {
			cs.stale = true
			continue
		}
		cs.rankProduct *= c.rankPrime
		cs.suitProduct *= c.suitPrime
	}
}

// AddSet adds every card of other.
func (cs *CardSet) AddSet(other *CardSet) {
	cs.Add(other.cards...)
}

// Union returns a new set with the cards of cs followed by those of other.
func (cs *CardSet) Union(other *CardSet) *CardSet {
	u := &CardSet{
		cards:       make([]Card, 0, len(cs.cards)+len(other.cards)),
		rankProduct: 1,
		suitProduct: 1,
	}
	u.Add(cs.cards...)
	u.Add(other.cards...)
	return u
}

// Remove drops the card from the set. It is a no-op when the card is absent.
func (cs *CardSet) Remove(c Card) {
	if !cs.Contains(c) {
		return
	}
	idx := slices.Index(cs.cards, c)
	cs.cards = slices.Delete(cs.cards, idx, idx+1)
	cs.bits &^= c.bit

	switch {
	case !cs.stale:
		cs.rankProduct /= c.rankPrime
		cs.suitProduct /= c.suitPrime
	case len(cs.cards) <= MaxProductCards:
		cs.recomputeProducts()
	}
}

func (cs *CardSet) recomputeProducts() {
	cs.rankProduct, cs.suitProduct = 1, 1
	for _, c := range cs.cards {
		cs.rankProduct *= c.rankPrime
		cs.suitProduct *= c.suitPrime
	}
	cs.stale = false
}

// Contains reports whether c is a member of the set.
func (cs *CardSet) Contains(c Card) bool {
	return c.bit != 0 && cs.bits&c.bit != 0
}

// IsEquivalent reports whether both sets hold the same cards, regardless of
// order.
func (cs *CardSet) IsEquivalent(other *CardSet) bool {
	return cs.bits == other.bits
}

// Copy returns an independent copy of the set.
func (cs *CardSet) Copy() *CardSet {
	return &CardSet{
		cards:       slices.Clone(cs.cards),
		bits:        cs.bits,
		rankProduct: cs.rankProduct,
		suitProduct: cs.suitProduct,
		stale:       cs.stale,
	}
}

// Subset returns a new set over the cards in [start, end), keeping order.
func (cs *CardSet) Subset(start, end int) (*CardSet, error) {
	if start < 0 || end < start || end > len(cs.cards) {
		return nil, fmt.Errorf("%w: subset [%d, %d) of %d cards", ErrNotEnoughCards, start, end, len(cs.cards))
	}
	sub := &CardSet{
		cards:       make([]Card, 0, end-start),
		rankProduct: 1,
		suitProduct: 1,
	}
	// members are already unique, fold them in directly
	for _, c := range cs.cards[start:end] {
		sub.cards = append(sub.cards, c)
		sub.bits |= c.bit
	}
	if len(sub.cards) > MaxProductCards {
		sub.stale = true
	} else {
		sub.recomputeProducts()
	}
	return sub, nil
}

// Draw removes the first n cards and returns them as a new set.
func (cs *CardSet) Draw(n int) (*CardSet, error) {
	drawn, err := cs.Subset(0, n)
	if err != nil {
		return nil, err
	}
	for _, c := range drawn.cards {
		cs.Remove(c)
	}
	return drawn, nil
}

// Shuffle randomizes the order of the cards in place (Fisher-Yates).
func (cs *CardSet) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(cs.cards), func(i, j int) {
		cs.cards[i], cs.cards[j] = cs.cards[j], cs.cards[i]
	})
}

// SortByRankDesc orders the cards by descending rank, breaking ties by
// descending suit.
func (cs *CardSet) SortByRankDesc() {
	slices.SortFunc(cs.cards, compareByRankDesc)
}

func compareByRankDesc(a, b Card) int {
	if a.rank != b.rank {
		return int(b.rank) - int(a.rank)
	}
	return int(b.suit) - int(a.suit)
}

// Len returns the number of cards in the set.
func (cs *CardSet) Len() int { return len(cs.cards) }

// Cards returns a copy of the cards in set order.
func (cs *CardSet) Cards() []Card { return slices.Clone(cs.cards) }

// At returns the i-th card of the set.
func (cs *CardSet) At(i int) Card { return cs.cards[i] }

// Bits returns the union of the position bits of the members.
func (cs *CardSet) Bits() uint64 { return cs.bits }

// RankProduct returns the product of the members' rank primes. The boolean
// is false when the set is too large for the product to be exact.
func (cs *CardSet) RankProduct() (uint64, bool) {
	if len(cs.cards) == 0 {
		return 1, true
	}
	return cs.rankProduct, !cs.stale
}

// SuitProduct returns the product of the members' suit primes. The boolean
// is false when the set is too large for the product to be exact.
func (cs *CardSet) SuitProduct() (uint64, bool) {
	if len(cs.cards) == 0 {
		return 1, true
	}
	return cs.suitProduct, !cs.stale
}

// ToBitString returns the membership bits as a zero padded 64 character
// binary string.
func (cs *CardSet) ToBitString() string {
	return fmt.Sprintf("%064b", cs.bits)
}

// OnesCount returns the number of set membership bits.
func (cs *CardSet) OnesCount() int {
	return bits.OnesCount64(cs.bits)
}

// String returns the card tokens separated by spaces.
func (cs *CardSet) String() string {
	return cs.join(Card.String)
}

// PrettyString returns the cards with suit glyphs separated by spaces.
func (cs *CardSet) PrettyString() string {
	return cs.join(Card.PrettyString)
}

func (cs *CardSet) join(fn func(Card) string) string {
	var sb strings.Builder
	for i, c := range cs.cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fn(c))
	}
	return sb.String()
}

// MarshalJSON encodes the set as an array of cards.
func (cs *CardSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.cards)
}

// UnmarshalJSON decodes an array of cards, dropping duplicates.
func (cs *CardSet) UnmarshalJSON(data []byte) error {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	*cs = *NewCardSet(cards...)
	return nil
}
