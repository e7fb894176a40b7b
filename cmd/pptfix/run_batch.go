package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pptfix/internal/batch"
	"pptfix/internal/config"
	"pptfix/internal/logging"
	"pptfix/internal/preflight"
	"pptfix/internal/workflow"
)

func runBatch(cmd *cobra.Command, ctx *commandContext, overrides *batchOverrides) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd.Flags(), cfg, overrides); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if results := preflight.RunAll(cfg.Paths.InputDir, cfg.Paths.OutputDir); !preflight.AllPassed(results) {
		var failed []string
		for _, result := range results {
			if !result.Passed {
				failed = append(failed, fmt.Sprintf("%s: %s", result.Name, result.Detail))
			}
		}
		return fmt.Errorf("environment checks failed: %s (run `pptfix check` for details)", strings.Join(failed, "; "))
	}

	logger, err := buildLogger(cfg, overrides.quiet)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	runner := workflow.NewRunner(cfg, logger)
	progress := attachProgress(runner, overrides.quiet)

	summary, runErr := runner.Run(signalCtx)
	progress.finish()
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) && summary != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Interrupted; partial results:")
			printSummary(cmd.OutOrStdout(), summary, overrides.quiet)
		}
		return runErr
	}

	printSummary(cmd.OutOrStdout(), summary, overrides.quiet)
	return nil
}

// buildLogger routes structured logs to stderr plus the configured log file.
// Quiet runs keep warnings and errors only.
func buildLogger(cfg *config.Config, quiet bool) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if quiet {
		level = "warn"
	}
	outputs := []string{"stderr"}
	if logPath := cfg.LogFilePath(); logPath != "" {
		outputs = append(outputs, logPath)
	}
	return logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

// progressDisplay owns the terminal progress bar. The bar is created on the
// first file so the total reflects what discovery actually found.
type progressDisplay struct {
	bar *progressbar.ProgressBar
}

func (p *progressDisplay) finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(os.Stderr)
}

func attachProgress(runner *workflow.Runner, quiet bool) *progressDisplay {
	if quiet || !stderrIsTerminal() {
		return nil
	}

	display := &progressDisplay{}
	runner.OnFileStart = func(index, total int, sourcePath string) {
		if display.bar == nil {
			display.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		display.bar.Describe(filepath.Base(sourcePath))
	}
	runner.OnFileDone = func(index, total int, job *batch.Job) {
		_ = display.bar.Add(1)
	}
	return display
}

func stderrIsTerminal() bool {
	return terminalWriter(os.Stderr)
}
