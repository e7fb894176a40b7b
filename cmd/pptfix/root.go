package main

import (
	"github.com/spf13/cobra"
)

type batchOverrides struct {
	inputDir     string
	outputDir    string
	crf          int
	audioBitrate string
	maxWidth     int
	maxHeight    int
	recursive    bool
	overwrite    bool
	quiet        bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var overrides batchOverrides

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "pptfix",
		Short:         "Convert videos into PowerPoint compatible MP4 files",
		Long: "pptfix batch-converts video files into H.264/AAC MP4 output that " +
			"embeds cleanly in PowerPoint presentations. Without a subcommand it " +
			"converts every media file found in the input directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, &overrides)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.StringVarP(&overrides.inputDir, "input", "i", "", "Directory containing source videos")
	flags.StringVarP(&overrides.outputDir, "output", "o", "", "Directory for converted output")
	flags.IntVar(&overrides.crf, "crf", 0, "x264 constant rate factor (18-35, lower is higher quality)")
	flags.StringVar(&overrides.audioBitrate, "audio-bitrate", "", "AAC audio bitrate, e.g. 160k")
	flags.IntVar(&overrides.maxWidth, "max-width", 0, "Downscale bound for video width")
	flags.IntVar(&overrides.maxHeight, "max-height", 0, "Downscale bound for video height")
	flags.BoolVarP(&overrides.recursive, "recursive", "r", false, "Scan the input directory recursively")
	flags.BoolVar(&overrides.overwrite, "overwrite", false, "Re-encode sources whose output already exists")
	flags.BoolVarP(&overrides.quiet, "quiet", "q", false, "Suppress progress output and per-file lists")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
