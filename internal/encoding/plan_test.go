package encoding

import (
	"path/filepath"
	"testing"

	"pptfix/internal/batch"
	"pptfix/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(t.TempDir(), "in")
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "out")
	return &cfg
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
		wantScale        bool
	}{
		{"uhd to full hd", 3840, 2160, 1920, 1080, 1920, 1080, true},
		{"within bounds", 1280, 720, 1920, 1080, 0, 0, false},
		{"exact bounds", 1920, 1080, 1920, 1080, 0, 0, false},
		{"portrait source", 1080, 1920, 1920, 1080, 608, 1080, true},
		{"width bound dominates", 4096, 1716, 1920, 1080, 1920, 804, true},
		{"odd source dimensions", 1921, 1081, 1920, 1080, 1920, 1080, true},
		{"tiny bound stays even", 100, 51, 10, 10, 10, 6, true},
		{"zero source ignored", 0, 0, 1920, 1080, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, scale := FitWithin(tc.w, tc.h, tc.maxW, tc.maxH)
			if scale != tc.wantScale {
				t.Fatalf("scale = %v, want %v", scale, tc.wantScale)
			}
			if target.Width != tc.wantW || target.Height != tc.wantH {
				t.Fatalf("target = %dx%d, want %dx%d", target.Width, target.Height, tc.wantW, tc.wantH)
			}
			if scale {
				if target.Width%2 != 0 || target.Height%2 != 0 {
					t.Fatalf("target %dx%d has odd dimension", target.Width, target.Height)
				}
				if target.Width > tc.maxW || target.Height > tc.maxH {
					t.Fatalf("target %dx%d exceeds bounds %dx%d", target.Width, target.Height, tc.maxW, tc.maxH)
				}
			}
		})
	}
}

func TestFitWithinPreservesAspectRatio(t *testing.T) {
	target, scale := FitWithin(3840, 2160, 1280, 720)
	if !scale {
		t.Fatal("expected downscale")
	}
	srcRatio := 3840.0 / 2160.0
	dstRatio := float64(target.Width) / float64(target.Height)
	if diff := srcRatio - dstRatio; diff > 0.01 || diff < -0.01 {
		t.Fatalf("aspect drifted: src %.4f dst %.4f", srcRatio, dstRatio)
	}
}

func TestPlanBuildsJob(t *testing.T) {
	cfg := testConfig(t)
	planner := NewPlanner(cfg)

	src := filepath.Join(cfg.Paths.InputDir, "talk.mkv")
	job, err := planner.Plan(src, 3840, 2160)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	if job.Status != batch.StatusPlanned {
		t.Fatalf("status = %s, want planned", job.Status)
	}
	if job.OutputPath != filepath.Join(cfg.Paths.OutputDir, "talk.mp4") {
		t.Fatalf("output = %s", job.OutputPath)
	}
	if job.TempPath != job.OutputPath+".tmp" {
		t.Fatalf("temp = %s", job.TempPath)
	}
	if job.Scale.Width != 1920 || job.Scale.Height != 1080 {
		t.Fatalf("scale = %+v", job.Scale)
	}
	if job.CRF != cfg.Encoding.CRF || job.AudioBitrate != cfg.Encoding.AudioBitrate {
		t.Fatalf("job params not copied from config: %+v", job)
	}
}

func TestPlanInBoundsSourceHasNoScale(t *testing.T) {
	cfg := testConfig(t)
	job, err := NewPlanner(cfg).Plan(filepath.Join(cfg.Paths.InputDir, "clip.mp4"), 1280, 720)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !job.Scale.IsZero() {
		t.Fatalf("expected no scale target, got %+v", job.Scale)
	}
}

func TestOutputPathPreserveStructure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Encoding.PreserveStructure = true
	planner := NewPlanner(cfg)

	src := filepath.Join(cfg.Paths.InputDir, "talks", "day1", "intro.webm")
	got, err := planner.OutputPath(src)
	if err != nil {
		t.Fatalf("output path: %v", err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "talks", "day1", "intro.mp4")
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	if _, err := planner.OutputPath("/elsewhere/clip.mp4"); err == nil {
		t.Fatal("source outside input dir should be rejected when mirroring")
	}
}
