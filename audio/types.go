package audio

import "time"

// Canonical waveform parameters expected by the transcription engine.
const (
	CanonicalSampleRate = 16000
	CanonicalBitDepth   = 16
	CanonicalChannels   = 1
)

// Waveform is decoded mono PCM audio ready for transcription. It is a
// transient value: produced by the Normalizer, consumed exactly once by the
// transcription engine, never persisted.
type Waveform struct {
	// SampleRate is the sample rate in Hz (always 16000 after normalization).
	SampleRate int
	// BitDepth is bits per sample (always 16 after normalization).
	BitDepth int
	// Channels is the channel count (always 1 after normalization).
	Channels int
	// PCM holds little-endian signed 16-bit samples.
	PCM []byte
	// SourceFormat is the original container extension (e.g. ".mp3").
	SourceFormat string
}

// Duration returns the audio duration derived from the sample count.
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	samples := len(w.PCM) / (w.BitDepth / 8)
	return time.Duration(samples) * time.Second / time.Duration(w.SampleRate)
}
