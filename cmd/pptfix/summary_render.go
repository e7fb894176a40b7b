package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"pptfix/internal/batch"
)

const summaryElapsedPrecision = 100 * time.Millisecond

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func terminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printSummary(w io.Writer, summary *batch.Summary, quiet bool) {
	if summary == nil {
		return
	}
	colorize := terminalWriter(w)

	fmt.Fprintln(w, renderSummaryTable(summary))

	if summary.Converted > 0 {
		fmt.Fprintf(w, "Input size:  %s\n", formatBytes(summary.TotalInputBytes))
		fmt.Fprintf(w, "Output size: %s\n", formatBytes(summary.TotalOutputBytes))
		fmt.Fprintf(w, "Space saved: %s\n", formatBytes(summary.SpaceSaved()))
	}
	fmt.Fprintf(w, "Elapsed:     %s\n", summary.Elapsed.Round(summaryElapsedPrecision))

	if quiet {
		return
	}
	printFileList(w, "Converted", summary.ConvertedFiles, ansiGreen, colorize)
	printFileList(w, "Skipped", summary.SkippedFiles, ansiYellow, colorize)
	printFileList(w, "Encode failed", summary.EncodeFailedFiles, ansiRed, colorize)
	printFileList(w, "Validation failed", summary.ValidationFailedFiles, ansiRed, colorize)
}

func renderSummaryTable(summary *batch.Summary) string {
	rows := [][]string{
		{"Converted", strconv.Itoa(summary.Converted)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Encode failed", strconv.Itoa(summary.EncodeFailed)},
		{"Validation failed", strconv.Itoa(summary.ValidationFailed)},
		{"Total", strconv.Itoa(summary.Total)},
	}
	return renderTable([]string{"Outcome", "Files"}, rows, 1)
}

func printFileList(w io.Writer, label string, files []string, color string, colorize bool) {
	if len(files) == 0 {
		return
	}
	heading := fmt.Sprintf("%s (%d):", label, len(files))
	if colorize {
		heading = color + heading + ansiReset
	}
	fmt.Fprintln(w, heading)
	for _, file := range files {
		fmt.Fprintf(w, "  %s\n", file)
	}
}

// formatBytes renders a byte count in IEC units, keeping the sign so a
// negative space saving reads as growth.
func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
