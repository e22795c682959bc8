package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FormatPct renders count/total as a percentage rounded to two decimals,
// e.g. "42.17%". A zero total renders as "0%".
func FormatPct(count, total int) string {
	if total == 0 {
		return "0%"
	}
	pct := float64(count) * 100 / float64(total)
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

// EnsureDataDirExists creates the datadir and necessary subdirectories if they don't exist
func EnsureDataDirExists(datadir string) error {
	// Create main datadir
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return fmt.Errorf("failed to create datadir %s: %v", datadir, err)
	}

	// Create logs subdirectory
	logsDir := filepath.Join(datadir, "logs")
	if err := os.MkdirAll(logsDir, 0700); err != nil {
		return fmt.Errorf("failed to create logs directory %s: %v", logsDir, err)
	}

	return nil
}
