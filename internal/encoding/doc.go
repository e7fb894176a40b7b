// Package encoding plans, executes, and verifies single-file conversions.
//
// Planning resolves global configuration plus a probed source resolution into
// a batch.Job, including the proportional even-dimension downscale target when
// the source exceeds the configured bounds. The encoder builds one ffmpeg
// invocation per job with the fixed PowerPoint-compatible target profile
// (H.264 + AAC + yuv420p, faststart). Validation probes the produced file and
// confirms the profile actually landed, catching silent encoder drift.
package encoding
