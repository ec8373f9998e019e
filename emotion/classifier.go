package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/skillsenselab/moodvoice/logger"
)

// Classifier is the swappable classification boundary. Implementations
// return one of the declared raw shapes or fail; no normalization happens
// behind this interface.
type Classifier interface {
	// Name returns the classifier name for logs and error details.
	Name() string
	// Classify runs the pre-trained model over the text.
	Classify(ctx context.Context, text string) (RawOutput, error)
}

// NewClassifier constructs the configured classifier backend.
func NewClassifier(cfg Config, log *logger.Logger) (Classifier, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.WithComponent("emotion")

	switch cfg.Backend {
	case BackendOllama:
		log.Info("emotion classifier resolved", map[string]interface{}{
			"backend": BackendOllama,
			"model":   cfg.Ollama.Model,
		})
		return newOllamaClassifier(cfg.Ollama), nil
	default:
		log.Info("emotion classifier resolved", map[string]interface{}{
			"backend": BackendPredict,
			"url":     cfg.PredictURL,
		})
		return newPredictClassifier(cfg), nil
	}
}

// predictClassifier posts text to a predict-style HTTP classifier and
// decodes whatever shape comes back.
type predictClassifier struct {
	cfg    Config
	client *http.Client
}

func newPredictClassifier(cfg Config) *predictClassifier {
	return &predictClassifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the classifier name.
func (c *predictClassifier) Name() string { return BackendPredict }

// Classify sends the text and decodes the raw response body.
func (c *predictClassifier) Classify(ctx context.Context, text string) (RawOutput, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Unrecognized(), fmt.Errorf("marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PredictURL, bytes.NewReader(payload))
	if err != nil {
		return Unrecognized(), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Unrecognized(), fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Unrecognized(), fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Unrecognized(), fmt.Errorf("classifier error (status %d): %s", resp.StatusCode, string(body))
	}

	return DecodeRaw(body), nil
}
