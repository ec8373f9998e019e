package transcription

import (
	"context"

	"github.com/skillsenselab/moodvoice/audio"
)

// Backend is a transcription strategy. Exactly one backend is resolved at
// engine construction and committed for the process lifetime; a failing call
// is never silently retried on another backend.
type Backend interface {
	// Name returns the backend name for logs and error details.
	Name() string
	// Transcribe converts a canonical waveform into a raw result. The
	// language is a hint; backends may detect a different one.
	Transcribe(ctx context.Context, wav *audio.Waveform, language string) (*Result, error)
}
