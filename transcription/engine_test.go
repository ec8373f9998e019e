package transcription

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/skillsenselab/moodvoice/audio"
	"github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
)

type fakeBackend struct {
	result   *Result
	err      error
	language string
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Transcribe(_ context.Context, _ *audio.Waveform, language string) (*Result, error) {
	b.language = language
	return b.result, b.err
}

func testWaveform() *audio.Waveform {
	return &audio.Waveform{
		SampleRate: audio.CanonicalSampleRate,
		BitDepth:   audio.CanonicalBitDepth,
		Channels:   audio.CanonicalChannels,
		PCM:        make([]byte, 3200),
	}
}

func newTestEngine(backend Backend) *Engine {
	return NewEngineWithBackend(backend, 2, logger.NewDefault("test"))
}

func TestTranscribeReturnsPrimaryText(t *testing.T) {
	engine := newTestEngine(&fakeBackend{result: &Result{
		Text:     "I had a wonderful day today.",
		Language: "en",
	}})

	result, err := engine.Transcribe(context.Background(), testWaveform(), "")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if result.Text != "I had a wonderful day today." {
		t.Errorf("text = %q, want primary transcript", result.Text)
	}
	if result.Language != "en" {
		t.Errorf("language = %q, want en", result.Language)
	}
}

func TestTranscribeBackendFailure(t *testing.T) {
	engine := newTestEngine(&fakeBackend{err: stderrors.New("connection refused")})

	_, err := engine.Transcribe(context.Background(), testWaveform(), "")
	if errors.CodeOf(err) != errors.ErrCodeTranscriptionBackend {
		t.Errorf("error code = %v, want transcription backend error", errors.CodeOf(err))
	}
}

func TestTranscribeEmptyResult(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
	}{
		{"empty text", &Result{Text: ""}},
		{"whitespace only", &Result{Text: "   \n\t "}},
		{"blank segments", &Result{Segments: []Segment{{Text: "  "}, {Text: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fakeBackend{result: tt.result})
			_, err := engine.Transcribe(context.Background(), testWaveform(), "")
			if errors.CodeOf(err) != errors.ErrCodeEmptyTranscription {
				t.Errorf("error code = %v, want empty transcription", errors.CodeOf(err))
			}
		})
	}
}

func TestTranscribeSegmentFallback(t *testing.T) {
	engine := newTestEngine(&fakeBackend{result: &Result{
		Text: "",
		Segments: []Segment{
			{Text: " I woke up early. "},
			{Text: "Went for a run."},
			{Text: "I woke up early."}, // repeated decode of the same window
			{Text: ""},
		},
	}})

	result, err := engine.Transcribe(context.Background(), testWaveform(), "")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	want := "I woke up early. Went for a run."
	if result.Text != want {
		t.Errorf("text = %q, want %q (deduped, first appearance order)", result.Text, want)
	}
}

func TestTranscribeArtifactFallsBackToSegments(t *testing.T) {
	engine := newTestEngine(&fakeBackend{result: &Result{
		Text: "Thanks for watching!",
		Segments: []Segment{
			{Text: "Today was stressful."},
		},
	}})

	result, err := engine.Transcribe(context.Background(), testWaveform(), "")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if result.Text != "Today was stressful." {
		t.Errorf("text = %q, want segment fallback past the artifact", result.Text)
	}
}

func TestTranscribeArtifactOnly(t *testing.T) {
	engine := newTestEngine(&fakeBackend{result: &Result{Text: "you"}})

	_, err := engine.Transcribe(context.Background(), testWaveform(), "")
	if errors.CodeOf(err) != errors.ErrCodeEmptyTranscription {
		t.Errorf("error code = %v, want empty transcription for artifact-only output", errors.CodeOf(err))
	}
}

func TestTranscribeLanguageHintPrecedence(t *testing.T) {
	backend := &fakeBackend{result: &Result{Text: "hola"}}
	engine := newTestEngine(backend)
	engine.language = "en"

	if _, err := engine.Transcribe(context.Background(), testWaveform(), "es"); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if backend.language != "es" {
		t.Errorf("backend language = %q, want per-request hint to win", backend.language)
	}

	if _, err := engine.Transcribe(context.Background(), testWaveform(), ""); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if backend.language != "en" {
		t.Errorf("backend language = %q, want configured default", backend.language)
	}
}

func TestNormalizeArtifact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Thank you.", "thank you"},
		{"  THANKS, for   watching!  ", "thanks for watching"},
		{"you", "you"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeArtifact(tt.in); got != tt.want {
			t.Errorf("normalizeArtifact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
