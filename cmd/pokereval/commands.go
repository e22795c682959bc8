package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
	"github.com/pbnjay/memory"
	"github.com/prometheus/procfs"

	"github.com/vctt94/pokereval/pkg/config"
	"github.com/vctt94/pokereval/pkg/equity"
	"github.com/vctt94/pokereval/pkg/poker"
	"github.com/vctt94/pokereval/pkg/utils"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func evalCmd(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	pretty := fs.Bool("pretty", false, "Print cards with suit symbols")
	dump := fs.Bool("dump", false, "Log the full evaluation result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("eval requires the cards to evaluate, e.g. \"Ah Kh Qh Jh 10h\"")
	}

	hand, err := poker.ParseCardSet(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	value, err := poker.Evaluate(hand)
	if err != nil {
		return err
	}
	result, err := poker.NewHandResult(value)
	if err != nil {
		return err
	}
	if *dump {
		log.Debugf("Evaluation of %s: %s", hand, spew.Sdump(result))
	}

	cards := hand.String()
	if *pretty {
		cards = hand.PrettyString()
	}
	fmt.Println(titleStyle.Render(cards))
	fmt.Printf("  value:    %s\n", valueStyle.Render(strconv.Itoa(int(result.Value))))
	fmt.Printf("  category: %s\n", result.Category)
	fmt.Printf("  hand:     %s\n", result.Description)
	return nil
}

func equityCmd(ctx context.Context, cfg *config.Config, eqLog slog.Logger, args []string) error {
	fs := flag.NewFlagSet("equity", flag.ContinueOnError)
	board := fs.String("board", "", "Known community cards, up to five")
	trials := fs.Int("trials", 0, "Number of simulated hands (default from config)")
	workers := fs.Int("workers", 0, "Number of simulation workers (default from config)")
	seed := fs.Int64("seed", 0, "Random seed, zero seeds from the clock")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("equity requires at least two pockets, e.g. \"Ah As\" \"Kh Kd\"")
	}

	overrides := make(map[string]interface{})
	if *trials != 0 {
		overrides["trials"] = *trials
	}
	if *workers != 0 {
		overrides["workers"] = *workers
	}
	if *seed != 0 {
		overrides["seed"] = *seed
	}
	if err := cfg.SetConfigValues(overrides); err != nil {
		return err
	}

	boardSet, err := poker.ParseCardSet(*board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	pockets := make([]*poker.CardSet, fs.NArg())
	for i, arg := range fs.Args() {
		if pockets[i], err = poker.ParseCardSet(arg); err != nil {
			return fmt.Errorf("pocket %d: %w", i, err)
		}
	}

	sim, err := equity.NewSimulator(equity.Config{
		Trials:  cfg.Trials,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Board:   boardSet,
		Log:     eqLog,
	})
	if err != nil {
		return err
	}
	report, err := sim.Run(ctx, pockets...)
	if err != nil {
		return err
	}

	fmt.Println(renderReport(report))
	return nil
}

// renderReport lays out one row per seat with the win/split share and the
// share of every hand category.
func renderReport(r *equity.Report) string {
	headers := []string{"Seat", "Pocket", "Win", "Split", "Win/Split"}
	for _, cat := range poker.Categories {
		headers = append(headers, cat.String())
	}

	rows := make([][]string, 0, len(r.Players))
	for seat, p := range r.Players {
		row := []string{
			strconv.Itoa(seat),
			p.Pocket.PrettyString(),
			utils.FormatPct(p.Wins, r.Trials),
			utils.FormatPct(p.Ties, r.Trials),
			utils.FormatPct(p.WinSplit(), r.Trials),
		}
		for _, cat := range poker.Categories {
			row = append(row, utils.FormatPct(p.Categories[cat], r.Trials))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	board := "-"
	if r.Board.Len() > 0 {
		board = r.Board.PrettyString()
	}
	title := titleStyle.Render(fmt.Sprintf("Board %s, %d trials, seed %d", board, r.Trials, r.Seed))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

func benchCmd(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	hands := fs.Int("hands", 1000000, "Number of random hands to evaluate")
	size := fs.Int("size", 7, "Cards per hand, 5 to 7")
	seed := fs.Int64("seed", 1, "Random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", *hands)
	}

	// Hands are generated up front so only evaluation is timed.
	rng := rand.New(rand.NewSource(*seed))
	sets := make([]*poker.CardSet, *hands)
	for i := range sets {
		cs, err := poker.RandomCardSet(*size, rng)
		if err != nil {
			return err
		}
		sets[i] = cs
	}

	cpuBefore := processCPUTime()
	var counts [poker.NumCategories]int
	start := time.Now()
	for _, cs := range sets {
		value, err := poker.Evaluate(cs)
		if err != nil {
			return err
		}
		cat, err := poker.CategoryOf(value)
		if err != nil {
			return err
		}
		counts[cat]++
	}
	elapsed := time.Since(start)
	cpuUsed := processCPUTime() - cpuBefore

	fmt.Println(titleStyle.Render(fmt.Sprintf("Evaluated %d %d-card hands", *hands, *size)))
	fmt.Printf("  elapsed:   %v\n", elapsed)
	fmt.Printf("  rate:      %s hands/s\n",
		valueStyle.Render(strconv.FormatFloat(float64(*hands)/elapsed.Seconds(), 'f', 0, 64)))
	if cpuUsed > 0 {
		fmt.Printf("  cpu time:  %.3fs\n", cpuUsed)
	}
	fmt.Printf("  host:      %d CPUs, %d MiB memory\n", runtime.NumCPU(), memory.TotalMemory()>>20)
	for _, cat := range poker.Categories {
		fmt.Printf("  %-16s %s\n", cat, utils.FormatPct(counts[cat], *hands))
	}
	return nil
}

// processCPUTime returns the user plus system time of this process in
// seconds, or zero where /proc is unavailable.
func processCPUTime() float64 {
	p, err := procfs.Self()
	if err != nil {
		log.Debugf("procfs unavailable: %v", err)
		return 0
	}
	stat, err := p.Stat()
	if err != nil {
		log.Debugf("Unable to read process stat: %v", err)
		return 0
	}
	return stat.CPUTime()
}
