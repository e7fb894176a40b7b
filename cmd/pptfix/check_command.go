package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pptfix/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg.Paths.InputDir, cfg.Paths.OutputDir)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "OK"
				if !result.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))

			if !preflight.AllPassed(results) {
				return fmt.Errorf("environment checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
