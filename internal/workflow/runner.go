package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pptfix/internal/batch"
	"pptfix/internal/config"
	"pptfix/internal/encoding"
	"pptfix/internal/fileutil"
	"pptfix/internal/logging"
	"pptfix/internal/media/ffprobe"
	"pptfix/internal/services"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".pptfix.lock"

// Runner executes one conversion batch. Stage functions are fields so tests
// can substitute them without an ffmpeg installation.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	runID   string
	planner *encoding.Planner

	probe    func(ctx context.Context, path string) (ffprobe.Result, error)
	encode   func(ctx context.Context, job *batch.Job) error
	validate func(ctx context.Context, path string, rules config.Validation) (encoding.Report, error)

	// Optional display hooks, invoked per file with a zero-based index.
	OnFileStart func(index, total int, sourcePath string)
	OnFileDone  func(index, total int, job *batch.Job)
}

// NewRunner builds a Runner wired to the real encode and probe stages. Every
// log line the runner emits carries a fresh run identifier.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	runID := uuid.NewString()
	encoder := encoding.NewEncoder(cfg, logger)
	return &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "workflow").With(logging.String(logging.FieldRunID, runID)),
		runID:    runID,
		planner:  encoding.NewPlanner(cfg),
		probe:    ffprobe.Inspect,
		encode:   encoder.Encode,
		validate: encoding.Validate,
	}
}

// RunID returns the identifier attached to this batch's log lines.
func (r *Runner) RunID() string {
	return r.runID
}

// Run discovers sources and processes them in order. The returned summary
// covers every job that was started; an error means the batch could not run
// at all, not that individual files failed.
func (r *Runner) Run(ctx context.Context) (*batch.Summary, error) {
	started := time.Now()

	info, err := os.Stat(r.cfg.Paths.InputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "input directory", fmt.Sprintf("%s is not accessible", r.cfg.Paths.InputDir), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "input directory", fmt.Sprintf("%s is not a directory", r.cfg.Paths.InputDir), nil)
	}
	if err := r.cfg.EnsureOutputDir(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "output directory", "", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "acquire output lock", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "acquire output lock", "another run is writing to this output directory", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	files, err := Discover(r.cfg.Paths.InputDir, r.cfg.Encoding.Recursive)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "scan input", "", err)
	}

	r.logger.Info("starting batch",
		logging.String("input", r.cfg.Paths.InputDir),
		logging.String("output", r.cfg.Paths.OutputDir),
		logging.Int("files", len(files)))

	summary := &batch.Summary{}
	for i, source := range files {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(started)
			return summary, err
		}
		if r.OnFileStart != nil {
			r.OnFileStart(i, len(files), source)
		}
		job := r.processFile(ctx, source)
		summary.Record(job)
		if r.OnFileDone != nil {
			r.OnFileDone(i, len(files), job)
		}
	}

	summary.Elapsed = time.Since(started)
	r.logger.Info("batch finished",
		logging.Int("converted", summary.Converted),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed()),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// processFile carries one source through plan, encode, validate, and
// finalize. The job always comes back in a terminal state unless the context
// was cancelled mid-stage.
func (r *Runner) processFile(ctx context.Context, source string) *batch.Job {
	started := time.Now()
	job := &batch.Job{SourcePath: source, Status: batch.StatusPending}
	defer func() {
		job.Elapsed = time.Since(started)
	}()

	outputPath, err := r.planner.OutputPath(source)
	if err != nil {
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrConfiguration, "plan", "resolve output path", "", err))
		r.logJobFailure(job)
		return job
	}

	// Skip is decided on the destination alone, before any subprocess runs.
	if !r.cfg.Encoding.OverwriteExisting {
		if _, err := os.Stat(outputPath); err == nil {
			job.OutputPath = outputPath
			job.Transition(batch.StatusPlanned)
			job.Transition(batch.StatusSkipped)
			r.logger.Info("skipping existing output",
				logging.String("source", job.SourcePath),
				logging.String("output", job.OutputPath))
			return job
		}
	}

	info, err := os.Stat(source)
	if err != nil {
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrNotFound, "plan", "stat source", "", err))
		r.logJobFailure(job)
		return job
	}

	probed, err := r.probe(ctx, source)
	if err != nil {
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrExternalTool, "plan", "probe source", "", err))
		r.logJobFailure(job)
		return job
	}
	video := probed.PrimaryVideo()
	if video == nil {
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrExternalTool, "plan", "probe source", "no video stream found", nil))
		r.logJobFailure(job)
		return job
	}

	planned, err := r.planner.Plan(source, video.Width, video.Height)
	if err != nil {
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrConfiguration, "plan", "resolve output path", "", err))
		r.logJobFailure(job)
		return job
	}
	job = planned
	job.InputBytes = info.Size()

	if dir := filepath.Dir(job.OutputPath); dir != r.cfg.Paths.OutputDir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrConfiguration, "plan", "create output subdirectory", "", err))
			r.logJobFailure(job)
			return job
		}
	}

	job.Transition(batch.StatusEncoding)
	r.logger.Info("encoding",
		logging.String("source", job.SourcePath),
		logging.String("output", job.OutputPath),
		logging.Int("crf", job.CRF),
		logging.Bool("downscale", !job.Scale.IsZero()))
	if err := r.encode(ctx, job); err != nil {
		job.Fail(services.FailureStatus(err), err)
		r.logJobFailure(job)
		return job
	}
	job.Transition(batch.StatusEncoded)

	if r.cfg.Validation.Enabled {
		report, err := r.validate(ctx, job.TempPath, r.cfg.Validation)
		if err != nil {
			_ = os.Remove(job.TempPath)
			job.Fail(services.FailureStatus(err), err)
			r.logJobFailure(job)
			return job
		}
		if !report.Pass() {
			_ = os.Remove(job.TempPath)
			job.Fail(batch.StatusValidationFailed,
				services.Wrap(services.ErrValidation, "validate", "check output", strings.Join(report.Problems(), "; "), nil))
			r.logJobFailure(job)
			return job
		}
	}

	if err := fileutil.FinalizeTemp(job.TempPath, job.OutputPath); err != nil {
		_ = os.Remove(job.TempPath)
		job.Fail(batch.StatusEncodeFailed, services.Wrap(services.ErrExternalTool, "finalize", "move output into place", "", err))
		r.logJobFailure(job)
		return job
	}
	job.Transition(batch.StatusValidated)

	r.logger.Info("converted",
		logging.String("source", job.SourcePath),
		logging.String("output", job.OutputPath),
		logging.Int64("input_bytes", job.InputBytes),
		logging.Int64("output_bytes", job.OutputBytes),
		logging.Duration("elapsed", time.Since(started)))
	return job
}

func (r *Runner) logJobFailure(job *batch.Job) {
	r.logger.Error("file failed",
		logging.String("source", job.SourcePath),
		logging.String("status", string(job.Status)),
		logging.Error(job.Err))
}
