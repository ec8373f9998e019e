package voice

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/moodvoice/audio"
	"github.com/skillsenselab/moodvoice/emotion"
	"github.com/skillsenselab/moodvoice/logger"
	"github.com/skillsenselab/moodvoice/mood"
	"github.com/skillsenselab/moodvoice/transcription"
)

// Service runs the voice-to-mood pipeline. Stages are strictly sequential
// within one request; each stage's output is the next stage's sole input.
type Service struct {
	normalizer *audio.Normalizer
	engine     *transcription.Engine
	classifier emotion.Classifier
	upserter   *mood.Upserter
	tracer     trace.Tracer
	log        *logger.Logger
}

// NewService wires the pipeline stages together.
func NewService(
	normalizer *audio.Normalizer,
	engine *transcription.Engine,
	classifier emotion.Classifier,
	upserter *mood.Upserter,
	log *logger.Logger,
) *Service {
	return &Service{
		normalizer: normalizer,
		engine:     engine,
		classifier: classifier,
		upserter:   upserter,
		tracer:     otel.Tracer("github.com/skillsenselab/moodvoice/voice"),
		log:        log.WithComponent("voice"),
	}
}

// AnalyzeRequest carries one voice analysis request through the pipeline.
type AnalyzeRequest struct {
	// UserID is the authenticated principal, trusted as given.
	UserID string
	// Audio is the raw uploaded file content.
	Audio []byte
	// FilenameHint supplies the container extension.
	FilenameHint string
	// SaveToMood controls whether a mood entry is upserted.
	SaveToMood bool
	// MoodDate is an optional explicit date (YYYY-MM-DD); empty means today.
	MoodDate string
}

// AnalyzeResult is the outcome of a voice analysis.
type AnalyzeResult struct {
	TranscribedText string                  `json:"transcribed_text"`
	PrimaryEmotion  string                  `json:"primary_emotion"`
	EmotionLevel    int                     `json:"emotion_level"`
	Alternates      []emotion.ScoredEmotion `json:"alternates"`
	MoodLevel       int                     `json:"mood_level"`
	Confidence      float64                 `json:"confidence"`
	Tags            []string                `json:"tags"`
	MoodEntry       *mood.Record            `json:"mood_entry,omitempty"`
	Message         string                  `json:"message"`
}

// TranscribeRequest carries a transcription-only request.
type TranscribeRequest struct {
	UserID       string
	Audio        []byte
	FilenameHint string
	// LanguageHint improves accuracy when the language is known.
	LanguageHint string
}

// TranscribeResult is the outcome of a transcription-only request.
type TranscribeResult struct {
	TranscribedText string `json:"transcribed_text"`
	Language        string `json:"language,omitempty"`
	PrimaryEmotion  string `json:"primary_emotion,omitempty"`
	EmotionLevel    int    `json:"emotion_level,omitempty"`
	Message         string `json:"message"`
}

// Analyze runs the full pipeline for one recording.
//
// Error policy: audio validation, decode, empty-transcription, and
// transcription backend failures abort the request. A malformed explicit
// date aborts the request. A classifier failure substitutes the neutral
// result. A persistence failure is reported in the message while the
// analysis itself still succeeds.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	ctx, span := s.tracer.Start(ctx, "voice.analyze", trace.WithAttributes(
		attribute.Int("audio.size_bytes", len(req.Audio)),
		attribute.Bool("save_to_mood", req.SaveToMood),
	))
	defer span.End()

	// Resolve the target date up front: a malformed date must reject the
	// request before any expensive work happens.
	var entryDate, dateErr = s.upserter.ResolveDate(req.MoodDate)
	if dateErr != nil {
		return nil, dateErr
	}

	wav, err := s.normalizeStage(ctx, req.Audio, req.FilenameHint)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcribeStage(ctx, wav, "")
	if err != nil {
		return nil, err
	}

	normalized := s.classifyStage(ctx, transcript.Text)
	moodLevel := mood.LevelFromEmotion(normalized.EmotionLevel)

	result := &AnalyzeResult{
		TranscribedText: transcript.Text,
		PrimaryEmotion:  normalized.PrimaryEmotion,
		EmotionLevel:    normalized.EmotionLevel,
		Alternates:      normalized.Alternates,
		MoodLevel:       moodLevel,
		Confidence:      normalized.Confidence,
		Tags:            normalized.Tags,
		Message:         "Voice analysis completed successfully",
	}

	if req.SaveToMood {
		upsertCtx, upsertSpan := s.tracer.Start(ctx, "mood.upsert")
		record, err := s.upserter.Upsert(upsertCtx, req.UserID, entryDate, moodLevel, normalized.Tags, transcript.Text)
		upsertSpan.End()
		if err != nil {
			// Persistence is best-effort: the computed analysis is
			// returned even when the write fails.
			s.log.WithError(err).Error("mood entry save failed", map[string]interface{}{
				"user_id": req.UserID,
				"date":    req.MoodDate,
			})
			result.Message = "Voice analysis completed successfully, but the mood entry could not be saved"
		} else {
			result.MoodEntry = record
			result.Message = "Voice analysis completed successfully and saved to mood entries"
		}
	}

	return result, nil
}

// TranscribeOnly runs the speech-to-text stages without emotion detection
// or persistence.
func (s *Service) TranscribeOnly(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	ctx, span := s.tracer.Start(ctx, "voice.transcribe", trace.WithAttributes(
		attribute.Int("audio.size_bytes", len(req.Audio)),
	))
	defer span.End()

	wav, err := s.normalizeStage(ctx, req.Audio, req.FilenameHint)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcribeStage(ctx, wav, req.LanguageHint)
	if err != nil {
		return nil, err
	}

	return &TranscribeResult{
		TranscribedText: transcript.Text,
		Language:        transcript.Language,
		Message:         "Transcription completed successfully",
	}, nil
}

func (s *Service) normalizeStage(ctx context.Context, data []byte, hint string) (*audio.Waveform, error) {
	ctx, span := s.tracer.Start(ctx, "audio.normalize")
	defer span.End()
	return s.normalizer.Normalize(ctx, data, hint)
}

func (s *Service) transcribeStage(ctx context.Context, wav *audio.Waveform, language string) (*transcription.Result, error) {
	ctx, span := s.tracer.Start(ctx, "transcription.transcribe")
	defer span.End()
	return s.engine.Transcribe(ctx, wav, language)
}

// classifyStage never fails the request: a classifier error after a
// successful transcription degrades to the neutral result.
func (s *Service) classifyStage(ctx context.Context, text string) emotion.Normalized {
	ctx, span := s.tracer.Start(ctx, "emotion.classify")
	defer span.End()

	raw, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("emotion classification failed, using neutral default", map[string]interface{}{
			"classifier": s.classifier.Name(),
		})
		return emotion.Neutral()
	}
	return emotion.Normalize(raw)
}
