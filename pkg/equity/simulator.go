package equity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"

	"github.com/vctt94/pokereval/pkg/poker"
	"github.com/vctt94/pokereval/pkg/statemachine"
)

// ErrInvalidPocket is returned for pockets that are empty or hold more than
// two cards.
var ErrInvalidPocket = errors.New("pocket must hold one or two cards")

// MaxPocketCards is the number of hole cards dealt to each player.
const MaxPocketCards = 2

// Config holds the simulation settings.
type Config struct {
	// Trials is the number of simulated hands.
	Trials int
	// Workers is the number of goroutines sharing the trials. Defaults to
	// the number of CPUs.
	Workers int
	// Seed makes runs reproducible. Zero seeds from the clock.
	Seed int64
	// Board holds community cards known in advance, up to five.
	Board *poker.CardSet

	Log slog.Logger
}

// Simulator estimates showdown equity of pockets by Monte-Carlo sampling of
// the missing community cards.
type Simulator struct {
	cfg Config
	log slog.Logger
}

// NewSimulator validates cfg and creates a simulator.
func NewSimulator(cfg Config) (*Simulator, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Board == nil {
		cfg.Board = poker.NewCardSet()
	}
	if cfg.Board.Len() > riverCards {
		return nil, fmt.Errorf("board holds %d cards, at most %d allowed", cfg.Board.Len(), riverCards)
	}

	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	return &Simulator{cfg: cfg, log: log}, nil
}

// Run deals the configured number of trials for the pockets and returns the
// merged report. Each worker owns its random source and partial report, so
// nothing is shared until the partials are merged.
func (s *Simulator) Run(ctx context.Context, pockets ...*poker.CardSet) (*Report, error) {
	remaining, err := s.remainingDeck(pockets)
	if err != nil {
		return nil, err
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := min(s.cfg.Workers, s.cfg.Trials)
	partials := make([]*Report, workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		// spread the remainder over the first workers
		trials := s.cfg.Trials / workers
		if w < s.cfg.Trials%workers {
			trials++
		}
		rng := rand.New(rand.NewSource(seed + int64(w)))

		g.Go(func() error {
			partial, err := s.work(gctx, rng, trials, remaining, pockets)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			partials[w] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := newReport(s.cfg.Board, pockets)
	report.Seed = seed
	for _, p := range partials {
		report.merge(p)
	}

	s.log.Infof("Simulated %d trials for %d players with %d workers in %v",
		report.Trials, len(pockets), workers, time.Since(start))
	return report, nil
}

func (s *Simulator) work(ctx context.Context, rng *rand.Rand, trials int,
	remaining *poker.CardSet, pockets []*poker.CardSet) (*Report, error) {

	partial := newReport(s.cfg.Board, pockets)
	t := &trial{pockets: pockets}
	sm := statemachine.NewStateMachine(t, stateDealFlop)

	for i := 0; i < trials; i++ {
		t.deck = remaining.Copy()
		t.deck.Shuffle(rng)
		t.board = s.cfg.Board.Copy()
		t.result, t.err = nil, nil

		sm.Reset(t, stateDealFlop)
		if err := sm.Run(ctx); err != nil {
			return nil, err
		}
		if t.err != nil {
			return nil, t.err
		}
		partial.tally(t.result)
	}

	s.log.Debugf("Worker finished %d trials", partial.Trials)
	return partial, nil
}

// remainingDeck validates the pockets and returns the deck without the
// known cards.
func (s *Simulator) remainingDeck(pockets []*poker.CardSet) (*poker.CardSet, error) {
	if len(pockets) == 0 {
		return nil, fmt.Errorf("%w: no pockets given", ErrInvalidPocket)
	}

	deck := poker.FullDeck()
	used := s.cfg.Board.Bits()
	for seat, p := range pockets {
		if p == nil || p.Len() == 0 || p.Len() > MaxPocketCards {
			return nil, fmt.Errorf("%w: seat %d", ErrInvalidPocket, seat)
		}
		if used&p.Bits() != 0 {
			return nil, fmt.Errorf("%w: seat %d pocket %s", poker.ErrDuplicateCard, seat, p)
		}
		used |= p.Bits()
	}

	for _, c := range deck.Cards() {
		if used&c.Bit() != 0 {
			deck.Remove(c)
		}
	}
	return deck, nil
}
