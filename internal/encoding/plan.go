package encoding

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"pptfix/internal/batch"
	"pptfix/internal/config"
)

// FitWithin computes the downscale target for a source resolution against the
// configured bounds. The target preserves aspect ratio and rounds both
// dimensions to even values, which libx264 requires for yuv420p output. The
// second return value is false when the source already fits and no scaling is
// needed.
func FitWithin(width, height, maxWidth, maxHeight int) (batch.ScaleTarget, bool) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return batch.ScaleTarget{}, false
	}
	if width <= maxWidth && height <= maxHeight {
		return batch.ScaleTarget{}, false
	}

	ratio := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	target := batch.ScaleTarget{
		Width:  roundEven(float64(width) * ratio),
		Height: roundEven(float64(height) * ratio),
	}
	// Nearest-even rounding may overshoot an odd bound by one pixel.
	if evenBound := maxWidth &^ 1; target.Width > evenBound {
		target.Width = evenBound
	}
	if evenBound := maxHeight &^ 1; target.Height > evenBound {
		target.Height = evenBound
	}
	return target, true
}

func roundEven(value float64) int {
	even := int(math.Round(value/2)) * 2
	if even < 2 {
		return 2
	}
	return even
}

// Planner turns discovered source files into encode jobs.
type Planner struct {
	cfg *config.Config
}

// NewPlanner returns a Planner bound to the provided configuration.
func NewPlanner(cfg *config.Config) *Planner {
	return &Planner{cfg: cfg}
}

// Plan builds the job for one source file given its probed resolution. The
// returned job is in the planned state; skip-vs-encode is decided by the
// runner against the destination path.
func (p *Planner) Plan(sourcePath string, sourceWidth, sourceHeight int) (*batch.Job, error) {
	outputPath, err := p.OutputPath(sourcePath)
	if err != nil {
		return nil, err
	}

	job := &batch.Job{
		SourcePath:   sourcePath,
		OutputPath:   outputPath,
		TempPath:     outputPath + ".tmp",
		CRF:          p.cfg.Encoding.CRF,
		AudioBitrate: p.cfg.Encoding.AudioBitrate,
		SourceWidth:  sourceWidth,
		SourceHeight: sourceHeight,
		Status:       batch.StatusPending,
	}
	job.Scale, _ = FitWithin(sourceWidth, sourceHeight, p.cfg.Encoding.MaxWidth, p.cfg.Encoding.MaxHeight)
	job.Transition(batch.StatusPlanned)
	return job, nil
}

// OutputPath maps a source file to its destination: `<output_dir>/<stem>.mp4`,
// or the mirrored subtree when preserve_structure is enabled.
func (p *Planner) OutputPath(sourcePath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if !p.cfg.Encoding.PreserveStructure {
		return filepath.Join(p.cfg.Paths.OutputDir, stem+".mp4"), nil
	}
	rel, err := filepath.Rel(p.cfg.Paths.InputDir, sourcePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("source %q is outside the input directory", sourcePath)
	}
	return filepath.Join(p.cfg.Paths.OutputDir, filepath.Dir(rel), stem+".mp4"), nil
}
