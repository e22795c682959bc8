package poker

import "errors"

var (
	// ErrParse is returned when a card token cannot be parsed.
	ErrParse = errors.New("invalid card format")

	// ErrInvalidCard is returned when a card is constructed with a rank
	// outside 2..14 or a suit outside 0..3.
	ErrInvalidCard = errors.New("invalid card")

	// ErrNotEnoughCards is returned when more cards are requested than a
	// set or deck holds.
	ErrNotEnoughCards = errors.New("not enough cards")

	// ErrInvalidHandSize is returned by the evaluator for hands that do not
	// hold between 5 and 7 cards.
	ErrInvalidHandSize = errors.New("hand must contain 5 to 7 cards")

	// ErrValueOutOfRange is returned when a hand value does not fall in any
	// category range.
	ErrValueOutOfRange = errors.New("hand value out of range")

	// ErrDuplicateCard is returned when the same card is dealt twice.
	ErrDuplicateCard = errors.New("duplicate card")
)
