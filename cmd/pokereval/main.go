package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/decred/slog"

	"github.com/vctt94/pokereval/pkg/config"
	"github.com/vctt94/pokereval/pkg/logging"
)

const appName = "pokereval"

// Common flags
var (
	dataDir     = flag.String("datadir", "", "Directory to load config file from")
	logFile     = flag.String("logfile", "", "Path to log file")
	maxLogFiles = flag.Int("maxlogfiles", 10, "Maximum number of log files")
	debugLevel  = flag.String("debuglevel", "", "Logging level: trace, debug, info, warn, error")
)

var log = slog.Disabled

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [global flags] <command> [args]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  eval <cards>                         Evaluate a 5 to 7 card hand")
		fmt.Fprintln(os.Stderr, "  equity [opts] <pocket> <pocket>...   Monte-Carlo showdown equity")
		fmt.Fprintln(os.Stderr, "  bench [opts]                         Measure evaluation throughput")
		fmt.Fprintln(os.Stderr, "\nGlobal flags:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	cfg, err := config.LoadConfig(appName, *dataDir)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	flagOverrides := make(map[string]interface{})
	if *logFile != "" {
		flagOverrides["logfile"] = *logFile
	}
	if *maxLogFiles != 10 {
		flagOverrides["maxlogfiles"] = *maxLogFiles
	}
	if *debugLevel != "" {
		flagOverrides["debuglevel"] = *debugLevel
	}
	if err := cfg.SetConfigValues(flagOverrides); err != nil {
		return err
	}

	// Log lines go to the file only, stdout is kept for the reports.
	logCfg := cfg.LogConfig()
	logCfg.Stdout = io.Discard
	logBackend, err := logging.NewLogBackend(logCfg)
	if err != nil {
		return err
	}
	defer logBackend.Close()
	log = logBackend.Logger("MAIN")
	log.Debugf("Loaded config from %s", cfg.DataDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch cmd {
	case "eval":
		return evalCmd(args)
	case "equity":
		return equityCmd(ctx, cfg, logBackend.Logger("EQTY"), args)
	case "bench":
		return benchCmd(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
