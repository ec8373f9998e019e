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

// localBackend transcribes via a faster-whisper HTTP sidecar. The model is
// loaded lazily through the process-wide cache; the resolved compute target
// is fixed for the backend's lifetime.
type localBackend struct {
	cfg    LocalConfig
	target ComputeTarget
	client *http.Client
	cache  *modelCache
}

func newLocalBackend(cfg LocalConfig, target ComputeTarget) *localBackend {
	return &localBackend{
		cfg:    cfg,
		target: target,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  newModelCache(),
	}
}

// Name returns the backend name.
func (b *localBackend) Name() string { return BackendLocal }

// sidecarModel is the handle published after a successful sidecar load.
type sidecarModel struct {
	id string
}

func (m *sidecarModel) ModelID() string { return m.id }

// Load implements ModelLoader by asking the sidecar to pull the model onto
// the resolved device. This is the slow, once-per-model step.
func (b *localBackend) Load(ctx context.Context, modelID string, target ComputeTarget) (ModelHandle, error) {
	payload, err := json.Marshal(map[string]string{
		"model":        modelID,
		"device":       target.Device,
		"compute_type": target.ComputeType,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal load request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.URL+"/models/load", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create load request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper load request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("whisper load error (status %d): %s", resp.StatusCode, string(body))
	}
	return &sidecarModel{id: modelID}, nil
}

// Transcribe ensures the model is loaded, then sends the waveform to the
// sidecar for inference.
func (b *localBackend) Transcribe(ctx context.Context, wav *audio.Waveform, language string) (*Result, error) {
	handle, err := b.cache.Get(ctx, b.cfg.Model, b.target, b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio.EncodeWAV(wav)); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	_ = writer.WriteField("model", handle.ModelID())
	_ = writer.WriteField("device", b.target.Device)
	_ = writer.WriteField("compute_type", b.target.ComputeType)
	if language != "" {
		_ = writer.WriteField("language", language)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, string(body))
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
		return nil, fmt.Errorf("decode whisper response: %w", err)
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

// LoadedModels returns how many models the backend holds, for diagnostics.
func (b *localBackend) LoadedModels() int { return b.cache.Len() }
