// Package transcription converts canonical waveforms into text.
//
// The engine resolves a single backend at construction time and commits to
// it for the process lifetime: the OpenAI speech-to-text API when an API key
// is configured, otherwise a local faster-whisper sidecar whose device and
// compute type are resolved by probing available accelerators. The local
// backend loads models lazily and caches them process-wide; concurrent
// first-use performs exactly one load.
//
// Inference runs inside a bulkhead so a burst of slow transcriptions cannot
// starve unrelated request handling.
package transcription
