package poker

import "fmt"

// PlayerResult is the outcome of one seat at showdown.
type PlayerResult struct {
	Seat   int
	Pocket *CardSet
	HandResult
}

// ShowdownResult holds the evaluation of every contesting seat and the
// seats holding the best hand. More than one winner means a split.
type ShowdownResult struct {
	Players   []PlayerResult
	Winners   []int
	BestValue HandValue
}

// IsSplit reports whether more than one seat shares the best hand.
func (r *ShowdownResult) IsSplit() bool {
	return len(r.Winners) > 1
}

// Showdown evaluates each pocket together with the board and finds the
// winning seats. Seats are indexed in the order the pockets are given. No
// card may appear twice across the board and the pockets.
func Showdown(board *CardSet, pockets ...*CardSet) (*ShowdownResult, error) {
	if len(pockets) == 0 {
		return nil, fmt.Errorf("showdown needs at least one pocket")
	}
	if board == nil {
		return nil, fmt.Errorf("%w: nil board", ErrInvalidHandSize)
	}

	used := board.bits
	res := &ShowdownResult{
		Players:   make([]PlayerResult, 0, len(pockets)),
		BestValue: -1,
	}
	for seat, pocket := range pockets {
		if pocket == nil {
			return nil, fmt.Errorf("%w: seat %d has no pocket", ErrInvalidHandSize, seat)
		}
		if used&pocket.bits != 0 {
			return nil, fmt.Errorf("%w: seat %d pocket %s", ErrDuplicateCard, seat, pocket)
		}
		used |= pocket.bits

		value, err := Evaluate(pocket.Union(board))
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		hr, err := NewHandResult(value)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		res.Players = append(res.Players, PlayerResult{Seat: seat, Pocket: pocket, HandResult: hr})

		switch {
		case value > res.BestValue:
			res.BestValue = value
			res.Winners = append(res.Winners[:0], seat)
		case value == res.BestValue:
			res.Winners = append(res.Winners, seat)
		}
	}
	return res, nil
}
