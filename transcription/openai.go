package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/skillsenselab/moodvoice/audio"
)

// openaiBackend transcribes via the OpenAI audio transcription API.
type openaiBackend struct {
	cfg    OpenAIConfig
	client *http.Client
}

func newOpenAIBackend(cfg OpenAIConfig) *openaiBackend {
	return &openaiBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the backend name.
func (b *openaiBackend) Name() string { return BackendOpenAI }

// Transcribe uploads the waveform as a WAV file and returns the verbose
// transcription, including segments used for the engine's fallback path.
func (b *openaiBackend) Transcribe(ctx context.Context, wav *audio.Waveform, language string) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio.EncodeWAV(wav)); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	_ = writer.WriteField("model", b.cfg.Model)
	_ = writer.WriteField("response_format", "verbose_json")
	if language != "" {
		_ = writer.WriteField("language", language)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text     string `json:"text"`
		Language string `json:"language"`
		Segments []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Text  string  `json:"text"`
		} `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}

	segments := make([]Segment, len(result.Segments))
	for i, seg := range result.Segments {
		segments[i] = Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}
	if result.Language == "" {
		result.Language = language
	}

	return &Result{Text: result.Text, Language: result.Language, Segments: segments}, nil
}
