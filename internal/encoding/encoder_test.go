package encoding

import (
	"path/filepath"
	"strings"
	"testing"

	"pptfix/internal/batch"
)

func argsContainPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestEncoderArgsEnforceTargetProfile(t *testing.T) {
	cfg := testConfig(t)
	encoder := NewEncoder(cfg, nil)

	job := &batch.Job{
		SourcePath:   filepath.Join(cfg.Paths.InputDir, "talk.mkv"),
		OutputPath:   filepath.Join(cfg.Paths.OutputDir, "talk.mp4"),
		TempPath:     filepath.Join(cfg.Paths.OutputDir, "talk.mp4.tmp"),
		CRF:          22,
		AudioBitrate: "160k",
	}

	args := encoder.Args(job)
	pairs := [][2]string{
		{"-i", job.SourcePath},
		{"-c:v", "libx264"},
		{"-profile:v", "high"},
		{"-level", "4.1"},
		{"-pix_fmt", "yuv420p"},
		{"-crf", "22"},
		{"-c:a", "aac"},
		{"-b:a", "160k"},
		{"-movflags", "+faststart"},
		{"-f", "mp4"},
	}
	for _, pair := range pairs {
		if !argsContainPair(args, pair[0], pair[1]) {
			t.Fatalf("args missing %s %s: %v", pair[0], pair[1], args)
		}
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, job.TempPath) {
		t.Fatalf("args should target the temp path: %v", args)
	}
	if !strings.Contains(joined, "-y") {
		t.Fatalf("args should force overwrite of a stale temp file: %v", args)
	}
	if strings.Contains(joined, "-vf") {
		t.Fatalf("no scale filter expected without a scale target: %v", args)
	}
}

func TestEncoderArgsAddScaleFilter(t *testing.T) {
	cfg := testConfig(t)
	encoder := NewEncoder(cfg, nil)

	job := &batch.Job{
		SourcePath:   "in.mkv",
		TempPath:     "out.mp4.tmp",
		CRF:          22,
		AudioBitrate: "160k",
		Scale:        batch.ScaleTarget{Width: 1920, Height: 1080},
	}
	args := encoder.Args(job)
	if !argsContainPair(args, "-vf", "scale=1920:1080") {
		t.Fatalf("expected scale filter in %v", args)
	}
}

func TestStderrTail(t *testing.T) {
	if got := stderrTail("  "); got != "encoder exited abnormally" {
		t.Fatalf("empty stderr tail = %q", got)
	}
	long := strings.Repeat("x", stderrTailLimit+50) + "END"
	got := stderrTail(long)
	if len(got) != stderrTailLimit {
		t.Fatalf("tail length = %d, want %d", len(got), stderrTailLimit)
	}
	if !strings.HasSuffix(got, "END") {
		t.Fatal("tail should keep the end of the output")
	}
}
