// Package process runs external commands with context-aware termination.
// The audio normalizer uses it for ffmpeg/ffprobe invocations and the
// transcription engine uses it to probe available accelerators.
package process
