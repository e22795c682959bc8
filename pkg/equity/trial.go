package equity

import (
	"github.com/vctt94/pokereval/pkg/poker"
	"github.com/vctt94/pokereval/pkg/statemachine"
)

// trial is one simulated hand: the board is completed from a shuffled deck
// street by street, then the pockets go to showdown.
type trial struct {
	deck    *poker.CardSet
	board   *poker.CardSet
	pockets []*poker.CardSet

	result *poker.ShowdownResult
	err    error
}

// Community card counts after each street.
const (
	flopCards  = 3
	turnCards  = 4
	riverCards = 5
)

func stateDealFlop(t *trial) statemachine.StateFn[trial] {
	if !t.dealTo(flopCards) {
		return nil
	}
	return stateDealTurn
}

func stateDealTurn(t *trial) statemachine.StateFn[trial] {
	if !t.dealTo(turnCards) {
		return nil
	}
	return stateDealRiver
}

func stateDealRiver(t *trial) statemachine.StateFn[trial] {
	if !t.dealTo(riverCards) {
		return nil
	}
	return stateShowdown
}

func stateShowdown(t *trial) statemachine.StateFn[trial] {
	t.result, t.err = poker.Showdown(t.board, t.pockets...)
	return nil
}

// dealTo draws from the deck until the board holds n cards. A board that
// is already complete for the street is left alone.
func (t *trial) dealTo(n int) bool {
	missing := n - t.board.Len()
	if missing <= 0 {
		return true
	}
	drawn, err := t.deck.Draw(missing)
	if err != nil {
		t.err = err
		return false
	}
	t.board.AddSet(drawn)
	return true
}
