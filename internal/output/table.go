// Package output provides terminal output utilities for toolbox-migrate:
// the run-history table, colour detection and the CLI logger.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/toolbox-migrate/internal/store"
)

// ANSI color codes for run status display
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted to w.
// It checks that w is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return writerIsTTY(w)
}

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// RenderHistoryTable renders recorded runs, newest first. Colour is applied
// to the status column only when color is true.
func RenderHistoryTable(runs []*store.Run, color bool) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	sorted := make([]*store.Run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-8s %-16s %-17s %5s %5s %6s  %s\n",
		"ID", "Status", "When", "Categories", "Repos", "Certs", "RPMs", "Backup root"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, run := range sorted {
		// Pad before colouring so escape codes do not break alignment.
		status := fmt.Sprintf("%-8s", formatStatus(run))
		if color {
			status = colorize(statusColor(run), status)
		}

		sb.WriteString(fmt.Sprintf("%-5d %s %-16s %-17s %5d %5d %6d  %s\n",
			run.ID,
			status,
			formatRelativeTime(run.CreatedAt),
			run.Categories,
			run.Repos,
			run.Certs,
			run.Packages,
			truncate(run.BackupRoot, 48)))

		if !run.Succeeded && run.Error != "" {
			sb.WriteString(fmt.Sprintf("      └ %s\n", truncate(run.Error, 88)))
		}
	}

	return sb.String()
}

func formatStatus(run *store.Run) string {
	if run.Succeeded {
		return run.Operation
	}
	return run.Operation + "!"
}

func statusColor(run *store.Run) string {
	if run.Succeeded {
		return colorGreen
	}
	return colorRed
}

func colorize(color, text string) string {
	return color + text + colorReset
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 30*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("2006-01-02")
	}
}

// truncate truncates a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
