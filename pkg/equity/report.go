package equity

import (
	"github.com/vctt94/pokereval/pkg/poker"
)

// PlayerStats tallies the trial outcomes of one seat.
type PlayerStats struct {
	Pocket *poker.CardSet

	// Wins counts trials won outright, Ties trials where the best hand was
	// shared.
	Wins int
	Ties int

	// Categories counts the category of the seat's best hand per trial.
	Categories [poker.NumCategories]int
}

// WinSplit returns the number of trials the seat won or split.
func (p PlayerStats) WinSplit() int {
	return p.Wins + p.Ties
}

// Report is the outcome of a simulation.
type Report struct {
	Trials  int
	Seed    int64
	Board   *poker.CardSet
	Players []PlayerStats
}

func newReport(board *poker.CardSet, pockets []*poker.CardSet) *Report {
	r := &Report{
		Board:   board,
		Players: make([]PlayerStats, len(pockets)),
	}
	for i, p := range pockets {
		r.Players[i].Pocket = p
	}
	return r
}

// tally records one showdown.
func (r *Report) tally(res *poker.ShowdownResult) {
	r.Trials++
	for _, p := range res.Players {
		r.Players[p.Seat].Categories[p.Category]++
	}
	if res.IsSplit() {
		for _, seat := range res.Winners {
			r.Players[seat].Ties++
		}
		return
	}
	r.Players[res.Winners[0]].Wins++
}

// merge folds a partial report of the same seats into r.
func (r *Report) merge(other *Report) {
	r.Trials += other.Trials
	for i := range r.Players {
		r.Players[i].Wins += other.Players[i].Wins
		r.Players[i].Ties += other.Players[i].Ties
		for cat, n := range other.Players[i].Categories {
			r.Players[i].Categories[cat] += n
		}
	}
}

// WinSplitPct returns the share of trials, in percent, the seat won or
// split.
func (r *Report) WinSplitPct(seat int) float64 {
	return r.pct(r.Players[seat].WinSplit())
}

// CategoryPct returns the share of trials, in percent, in which the seat's
// best hand fell in cat.
func (r *Report) CategoryPct(seat int, cat poker.Category) float64 {
	return r.pct(r.Players[seat].Categories[cat])
}

func (r *Report) pct(n int) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(n) * 100 / float64(r.Trials)
}
