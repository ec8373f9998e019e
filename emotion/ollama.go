package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// classifyPrompt instructs the model to answer in the leveled-label shape.
const classifyPrompt = `You are an emotion classifier. Given a journal entry, respond with JSON only: {"emotion": "<single lowercase emotion word>", "emotion_level": <integer 1-10 intensity>}.`

// ollamaClassifier classifies text by prompting a local LLM through the
// Ollama chat API in JSON mode.
type ollamaClassifier struct {
	cfg    OllamaConfig
	client *http.Client
}

func newOllamaClassifier(cfg OllamaConfig) *ollamaClassifier {
	return &ollamaClassifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the classifier name.
func (c *ollamaClassifier) Name() string { return BackendOllama }

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

// Classify prompts the model and decodes its JSON answer as a raw shape.
func (c *ollamaClassifier) Classify(ctx context.Context, text string) (RawOutput, error) {
	payload, err := json.Marshal(ollamaChatRequest{
		Model: c.cfg.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: classifyPrompt},
			{Role: "user", Content: text},
		},
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return Unrecognized(), fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return Unrecognized(), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Unrecognized(), fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Unrecognized(), fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var chat ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Unrecognized(), fmt.Errorf("decode ollama response: %w", err)
	}

	return DecodeRaw([]byte(chat.Message.Content)), nil
}
