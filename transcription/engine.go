package transcription

import (
	"context"
	"strings"

	"github.com/skillsenselab/moodvoice/audio"
	"github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
	"github.com/skillsenselab/moodvoice/process"
	"github.com/skillsenselab/moodvoice/resilience"
)

// Engine is the transcription entry point. The backend strategy is resolved
// once at construction and never changes afterwards.
type Engine struct {
	backend  Backend
	bulkhead *resilience.Bulkhead
	language string
	log      *logger.Logger
}

// NewEngine resolves the backend strategy and constructs the engine.
//
// Resolution: an explicitly configured backend wins; with "auto" the OpenAI
// API is selected when its key is present, otherwise the local sidecar. The
// local compute target is probed here, once, unless overridden in config.
func NewEngine(ctx context.Context, cfg Config, runner process.Runner, log *logger.Logger) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.WithComponent("transcription")

	var backend Backend
	switch {
	case cfg.Backend == BackendOpenAI,
		cfg.Backend == BackendAuto && cfg.OpenAI.APIKey != "":
		backend = newOpenAIBackend(cfg.OpenAI)
		log.Info("transcription strategy resolved", map[string]interface{}{
			"backend": BackendOpenAI,
			"model":   cfg.OpenAI.Model,
		})
	default:
		target := ComputeTarget{Device: cfg.Local.Device, ComputeType: cfg.Local.ComputeType}
		if target.Device == "" {
			target = ResolveComputeTarget(ctx, runner)
		} else if target.ComputeType == "" {
			if target.Device == DeviceCPU {
				target.ComputeType = "float32"
			} else {
				target.ComputeType = "float16"
			}
		}
		backend = newLocalBackend(cfg.Local, target)
		log.Info("transcription strategy resolved", map[string]interface{}{
			"backend":      BackendLocal,
			"model":        cfg.Local.Model,
			"device":       target.Device,
			"compute_type": target.ComputeType,
		})
	}

	return &Engine{
		backend: backend,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "transcription",
			MaxConcurrent: cfg.MaxConcurrent,
		}),
		language: cfg.Language,
		log:      log,
	}, nil
}

// NewEngineWithBackend constructs an engine around an explicit backend.
// Used by tests and by callers that manage backend wiring themselves.
func NewEngineWithBackend(backend Backend, maxConcurrent int, log *logger.Logger) *Engine {
	return &Engine{
		backend: backend,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "transcription",
			MaxConcurrent: maxConcurrent,
		}),
		log: log.WithComponent("transcription"),
	}
}

// BackendName returns the resolved strategy name.
func (e *Engine) BackendName() string { return e.backend.Name() }

// Transcribe converts a waveform into text. The backend call runs inside the
// engine bulkhead. Backend failures surface as a transcription backend
// error; a transcript that is empty after the segment fallback surfaces as
// an empty transcription error.
func (e *Engine) Transcribe(ctx context.Context, wav *audio.Waveform, languageHint string) (*Result, error) {
	language := languageHint
	if language == "" {
		language = e.language
	}

	raw, err := resilience.ExecuteWithResult(ctx, e.bulkhead, func() (*Result, error) {
		return e.backend.Transcribe(ctx, wav, language)
	})
	if err != nil {
		return nil, errors.TranscriptionBackend(e.backend.Name(), err)
	}

	text := finalText(raw)
	if text == "" {
		return nil, errors.EmptyTranscription()
	}

	e.log.Debug("transcription complete", map[string]interface{}{
		"backend":  e.backend.Name(),
		"chars":    len(text),
		"language": raw.Language,
	})

	return &Result{Text: text, Language: raw.Language, Segments: raw.Segments}, nil
}

// finalText picks the transcript text: the primary decoded transcript when
// usable, otherwise the segment texts concatenated with duplicates removed
// in order of first appearance.
func finalText(raw *Result) string {
	primary := strings.TrimSpace(raw.Text)
	if primary != "" && !isPromptArtifact(primary) {
		return primary
	}

	seen := make(map[string]bool)
	var parts []string
	for _, seg := range raw.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		key := normalizeArtifact(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// promptArtifacts are transcripts Whisper-family models emit for silence or
// music, indistinguishable from decoder prompt leakage.
var promptArtifacts = map[string]bool{
	"you":                                  true,
	"thank you":                            true,
	"thanks for watching":                  true,
	"thank you for watching":               true,
	"subtitles by the amaraorg community":  true,
	"subtitles by the amara org community": true,
}

func isPromptArtifact(text string) bool {
	return promptArtifacts[normalizeArtifact(text)]
}

// normalizeArtifact lowercases and strips punctuation so artifact matching
// and segment deduplication ignore formatting differences.
func normalizeArtifact(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
