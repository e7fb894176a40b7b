package encoding

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"pptfix/internal/batch"
	"pptfix/internal/config"
	"pptfix/internal/logging"
	"pptfix/internal/services"
)

// stderrTailLimit bounds how much encoder output is attached to failures.
const stderrTailLimit = 600

// Encoder runs one ffmpeg invocation per job against the fixed target
// profile. The argument vector is assembled with ffmpeg-go; execution goes
// through exec.CommandContext so an interrupt kills the in-flight encode.
type Encoder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewEncoder returns an Encoder bound to the provided configuration.
func NewEncoder(cfg *config.Config, logger *slog.Logger) *Encoder {
	return &Encoder{cfg: cfg, logger: logging.NewComponentLogger(logger, "encoder")}
}

// Args returns the full ffmpeg argument vector for a job, excluding the
// binary name.
func (e *Encoder) Args(job *batch.Job) []string {
	output := ffmpeg.KwArgs{
		"c:v":       "libx264",
		"profile:v": e.cfg.Encoding.VideoProfile,
		"level":     e.cfg.Encoding.VideoLevel,
		"pix_fmt":   "yuv420p",
		"crf":       strconv.Itoa(job.CRF),
		"c:a":       "aac",
		"b:a":       job.AudioBitrate,
		"movflags":  "+faststart",
		// The temp path carries a .tmp suffix, so the container must be
		// selected explicitly.
		"f": "mp4",
	}
	if !job.Scale.IsZero() {
		output["vf"] = fmt.Sprintf("scale=%d:%d", job.Scale.Width, job.Scale.Height)
	}

	return ffmpeg.Input(job.SourcePath).
		Output(job.TempPath, output).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

// Encode converts one job's source into its temp artifact. A non-zero exit or
// a missing/empty output file is reported as an external tool error; the temp
// file is removed on failure.
func (e *Encoder) Encode(ctx context.Context, job *batch.Job) error {
	args := e.Args(job)
	e.logger.Debug("running ffmpeg", logging.String("source", job.SourcePath), logging.String("args", strings.Join(args, " ")))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.cfg.FFmpegBinary(), args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(job.TempPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return services.Wrap(services.ErrExternalTool, "encode", "run ffmpeg", stderrTail(stderr.String()), err)
	}

	info, err := os.Stat(job.TempPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "encode", "inspect output", "encoder exited cleanly but produced no file", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(job.TempPath)
		return services.Wrap(services.ErrExternalTool, "encode", "inspect output", "encoder produced an empty file", nil)
	}
	job.OutputBytes = info.Size()
	return nil
}

func stderrTail(output string) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "encoder exited abnormally"
	}
	if len(trimmed) > stderrTailLimit {
		trimmed = trimmed[len(trimmed)-stderrTailLimit:]
	}
	return trimmed
}
