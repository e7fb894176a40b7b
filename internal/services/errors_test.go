package services

import (
	"errors"
	"testing"

	"pptfix/internal/batch"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "encode", "run ffmpeg", "encoder exited abnormally", cause)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "external tool error: encode: run ffmpeg: encoder exited abnormally: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "encode", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("nil marker should default to ErrExternalTool, got %v", err)
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want batch.Status
	}{
		{Wrap(ErrValidation, "validate", "probe output", "codec mismatch", nil), batch.StatusValidationFailed},
		{Wrap(ErrExternalTool, "encode", "run ffmpeg", "", nil), batch.StatusEncodeFailed},
		{errors.New("untagged"), batch.StatusEncodeFailed},
	}
	for _, tc := range cases {
		if got := FailureStatus(tc.err); got != tc.want {
			t.Fatalf("FailureStatus(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
