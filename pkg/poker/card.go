package poker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

// String returns the one-letter token of the suit as accepted by ParseCard.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Symbol returns the unicode glyph of the suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Rank represents a card rank, from Two (2) up to Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks in a suit.
const NumRanks = 13

// String returns the rank token as accepted by ParseCard.
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	default:
		if r >= Two && r <= Ten {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

var rankNames = [...]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six",
	Seven: "Seven", Eight: "Eight", Nine: "Nine", Ten: "Ten",
	Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

// Name returns the english name of the rank ("Queen").
func (r Rank) Name() string {
	if r < Two || r > Ace {
		return "Unknown"
	}
	return rankNames[r]
}

// Plural returns the plural english name of the rank ("Sixes", "Kings").
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Primes indexed by rank and by suit. They are globally unique so a product
// of them can be divided exactly when a card leaves a set.
var (
	rankPrimes = [...]uint64{
		Two: 2, Three: 3, Four: 5, Five: 7, Six: 11, Seven: 13, Eight: 17,
		Nine: 19, Ten: 23, Jack: 29, Queen: 31, King: 37, Ace: 41,
	}
	suitPrimes = [NumSuits]uint64{43, 47, 53, 59}

	// flushComposites holds suitPrime^5 for each suit: a suit product
	// divisible by it holds five cards of that suit.
	flushComposites = [NumSuits]uint64{
		43 * 43 * 43 * 43 * 43,
		47 * 47 * 47 * 47 * 47,
		53 * 53 * 53 * 53 * 53,
		59 * 59 * 59 * 59 * 59,
	}
)

// Card represents a playing card. Besides rank and suit it carries a single
// position bit in a 52-bit space (suit*13 + rank-2) and the rank and suit
// primes. All fields are derived once in NewCard, so two cards compare equal
// with == iff rank and suit match.
type Card struct {
	rank      Rank
	suit      Suit
	bit       uint64
	rankPrime uint64
	suitPrime uint64
}

// NewCard creates a card from a rank in 2..14 and a suit in 0..3.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if rank < Two || rank > Ace {
		return Card{}, fmt.Errorf("%w: rank %d must be between 2 and 14", ErrInvalidCard, rank)
	}
	if suit >= NumSuits {
		return Card{}, fmt.Errorf("%w: suit %d must be below %d", ErrInvalidCard, suit, NumSuits)
	}
	return newCard(rank, suit), nil
}

// MustCard is like NewCard but panics on invalid input. It is meant for
// constants and tests.
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func newCard(rank Rank, suit Suit) Card {
	return Card{
		rank:      rank,
		suit:      suit,
		bit:       1 << (uint(suit)*NumRanks + uint(rank-Two)),
		rankPrime: rankPrimes[rank],
		suitPrime: suitPrimes[suit],
	}
}

// ParseCard parses a token such as "As", "10d" or "Td". The rank is one of
// 2..10, A, K, Q, J or T and the suit one of c, d, h, s or its glyph (as
// written by PrettyString). Anything else is a parse error.
func ParseCard(token string) (Card, error) {
	token = strings.TrimSpace(token)
	suitRune, size := utf8.DecodeLastRuneInString(token)
	rankLen := len(token) - size
	if size == 0 || rankLen < 1 || rankLen > 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrParse, token)
	}
	rank, ok := parseRankToken(token[:rankLen])
	if !ok {
		return Card{}, fmt.Errorf("%w: invalid rank in %q", ErrParse, token)
	}
	suit, ok := parseSuitToken(suitRune)
	if !ok {
		return Card{}, fmt.Errorf("%w: invalid suit in %q", ErrParse, token)
	}
	return newCard(rank, suit), nil
}

func parseRankToken(s string) (Rank, bool) {
	switch s {
	case "A":
		return Ace, true
	case "K":
		return King, true
	case "Q":
		return Queen, true
	case "J":
		return Jack, true
	case "10", "T":
		return Ten, true
	}
	if len(s) != 1 || s[0] < '2' || s[0] > '9' {
		return 0, false
	}
	return Rank(s[0] - '0'), true
}

func parseSuitToken(r rune) (Suit, bool) {
	switch r {
	case 'c', '♣':
		return Clubs, true
	case 'd', '♦':
		return Diamonds, true
	case 'h', '♥':
		return Hearts, true
	case 's', '♠':
		return Spades, true
	}
	return 0, false
}

// MustParseCard is like ParseCard but panics on malformed tokens.
func MustParseCard(token string) Card {
	c, err := ParseCard(token)
	if err != nil {
		panic(err)
	}
	return c
}

// parseRank and parseSuit are the lenient forms used for JSON values. They
// also take lower case letters and english names.
func parseRank(s string) (Rank, bool) {
	switch s {
	case "A", "a", "ace", "Ace":
		return Ace, true
	case "K", "k", "king", "King":
		return King, true
	case "Q", "q", "queen", "Queen":
		return Queen, true
	case "J", "j", "jack", "Jack":
		return Jack, true
	case "10", "T", "t", "ten", "Ten":
		return Ten, true
	}
	if len(s) != 1 || s[0] < '2' || s[0] > '9' {
		return 0, false
	}
	return Rank(s[0] - '0'), true
}

func parseSuit(s string) (Suit, bool) {
	switch s {
	case "c", "♣", "clubs", "Clubs":
		return Clubs, true
	case "d", "♦", "diamonds", "Diamonds":
		return Diamonds, true
	case "h", "♥", "hearts", "Hearts":
		return Hearts, true
	case "s", "♠", "spades", "Spades":
		return Spades, true
	}
	return 0, false
}

// Rank returns the card rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card suit.
func (c Card) Suit() Suit { return c.suit }

// Bit returns the card position bit.
func (c Card) Bit() uint64 { return c.bit }

// RankPrime returns the prime associated with the card rank.
func (c Card) RankPrime() uint64 { return c.rankPrime }

// SuitPrime returns the prime associated with the card suit.
func (c Card) SuitPrime() uint64 { return c.suitPrime }

// IsValid reports whether the card was built through NewCard or ParseCard.
// The zero Card is not valid.
func (c Card) IsValid() bool { return c.bit != 0 }

// String returns the card token, e.g. "10d". It round trips through ParseCard.
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// PrettyString returns the card with a suit glyph, e.g. "6♦".
func (c Card) PrettyString() string {
	return c.rank.String() + c.suit.Symbol()
}

// CardJSON represents a card for JSON serialization
type CardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler interface for Card
func (c Card) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: cannot marshal zero card", ErrInvalidCard)
	}
	return json.Marshal(CardJSON{
		Suit:  c.suit.String(),
		Value: c.rank.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface for Card. Suits and
// values accept the short tokens as well as glyphs and english names.
func (c *Card) UnmarshalJSON(data []byte) error {
	var cardJSON CardJSON
	if err := json.Unmarshal(data, &cardJSON); err != nil {
		return err
	}

	suit, ok := parseSuit(cardJSON.Suit)
	if !ok {
		return fmt.Errorf("%w: invalid suit: %s", ErrParse, cardJSON.Suit)
	}
	rank, ok := parseRank(cardJSON.Value)
	if !ok {
		return fmt.Errorf("%w: invalid value: %s", ErrParse, cardJSON.Value)
	}

	*c = newCard(rank, suit)
	return nil
}
