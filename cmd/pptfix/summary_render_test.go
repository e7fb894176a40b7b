package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pptfix/internal/batch"
)

func TestFormatBytes(t *testing.T) {
	if got := formatBytes(0); got != "0 B" {
		t.Errorf("formatBytes(0) = %q", got)
	}
	if got := formatBytes(1536); got != "1.5 KiB" {
		t.Errorf("formatBytes(1536) = %q", got)
	}
	if got := formatBytes(-1536); got != "-1.5 KiB" {
		t.Errorf("formatBytes(-1536) = %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	summary := &batch.Summary{
		Total:             3,
		Converted:         1,
		Skipped:           1,
		EncodeFailed:      1,
		ConvertedFiles:    []string{"/in/a.mov"},
		SkippedFiles:      []string{"/in/b.mov"},
		EncodeFailedFiles: []string{"/in/c.mov"},
		TotalInputBytes:   4096,
		TotalOutputBytes:  1024,
		Elapsed:           1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	printSummary(&buf, summary, false)
	out := buf.String()

	for _, want := range []string{
		"Converted", "Skipped", "Encode failed",
		"Space saved: 3.0 KiB",
		"/in/a.mov", "/in/b.mov", "/in/c.mov",
		"1.5s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ansiGreen) {
		t.Error("buffer output must not be colorized")
	}
}

func TestPrintSummaryQuietOmitsFileLists(t *testing.T) {
	summary := &batch.Summary{
		Total:          1,
		Converted:      1,
		ConvertedFiles: []string{"/in/a.mov"},
	}

	var buf bytes.Buffer
	printSummary(&buf, summary, true)
	if strings.Contains(buf.String(), "/in/a.mov") {
		t.Error("quiet summary must not list files")
	}
}

func TestRenderSummaryTableCounts(t *testing.T) {
	out := renderSummaryTable(&batch.Summary{Total: 5, Converted: 3, Skipped: 2})
	for _, want := range []string{"Outcome", "Files", "Total", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
