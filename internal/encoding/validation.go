package encoding

import (
	"context"
	"strings"

	"pptfix/internal/config"
	"pptfix/internal/media/ffprobe"
	"pptfix/internal/services"
)

// Target profile every output must carry.
const (
	targetVideoCodec  = "h264"
	targetAudioCodec  = "aac"
	targetPixelFormat = "yuv420p"
)

// Strict-mode requirements, matching what PowerPoint actually accepts.
const (
	strictVideoProfile = "high"
	strictAudioProfile = "lc"
)

var strictVideoLevels = map[int]struct{}{41: {}, 42: {}}

// Report captures the per-check outcome of validating one output file.
type Report struct {
	Path string

	VideoCodecOK  bool
	AudioCodecOK  bool
	PixelFormatOK bool

	// Populated only when strict profile/level checking is enabled.
	Strict         bool
	VideoProfileOK bool
	VideoLevelOK   bool
	AudioProfileOK bool
}

// Pass reports whether every enabled check succeeded.
func (r Report) Pass() bool {
	if !r.VideoCodecOK || !r.AudioCodecOK || !r.PixelFormatOK {
		return false
	}
	if r.Strict && (!r.VideoProfileOK || !r.VideoLevelOK || !r.AudioProfileOK) {
		return false
	}
	return true
}

// Problems lists the failed checks for log and summary output.
func (r Report) Problems() []string {
	var problems []string
	if !r.VideoCodecOK {
		problems = append(problems, "video codec is not h264")
	}
	if !r.AudioCodecOK {
		problems = append(problems, "audio codec is not aac")
	}
	if !r.PixelFormatOK {
		problems = append(problems, "pixel format is not yuv420p")
	}
	if r.Strict {
		if !r.VideoProfileOK {
			problems = append(problems, "video profile is not High")
		}
		if !r.VideoLevelOK {
			problems = append(problems, "video level is not 4.1/4.2")
		}
		if !r.AudioProfileOK {
			problems = append(problems, "audio profile is not AAC LC")
		}
	}
	return problems
}

// Validate probes an encoded file and checks it against the target profile.
// Probe failures are returned as errors; a clean probe always yields a Report,
// pass or fail.
func Validate(ctx context.Context, path string, rules config.Validation) (Report, error) {
	result, err := ffprobe.Inspect(ctx, path)
	if err != nil {
		return Report{}, services.Wrap(services.ErrValidation, "validate", "probe output", "unable to inspect encoded file", err)
	}
	report := Evaluate(result, rules.EnforceProfileLevel)
	report.Path = path
	return report, nil
}

// Evaluate checks probed metadata against the target profile. Split from
// Validate so the rule set is testable without an ffprobe binary.
func Evaluate(result ffprobe.Result, strict bool) Report {
	report := Report{Strict: strict}

	if video := result.PrimaryVideo(); video != nil {
		report.VideoCodecOK = strings.EqualFold(video.CodecName, targetVideoCodec)
		report.PixelFormatOK = strings.EqualFold(video.PixFmt, targetPixelFormat)
		if strict {
			report.VideoProfileOK = strings.EqualFold(video.Profile, strictVideoProfile)
			_, report.VideoLevelOK = strictVideoLevels[video.Level]
		}
	}
	if audio := result.PrimaryAudio(); audio != nil {
		report.AudioCodecOK = strings.EqualFold(audio.CodecName, targetAudioCodec)
		if strict {
			report.AudioProfileOK = strings.EqualFold(audio.Profile, strictAudioProfile)
		}
	}
	return report
}
