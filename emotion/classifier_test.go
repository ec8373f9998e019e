package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/moodvoice/logger"
)

func TestPredictClassifier(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"emotion":"joy","emotion_level":7}`))
	}))
	defer srv.Close()

	cfg := Config{PredictURL: srv.URL}
	cfg.ApplyDefaults()
	c := newPredictClassifier(cfg)

	raw, err := c.Classify(context.Background(), "what a day")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if gotBody["text"] != "what a day" {
		t.Errorf("request text = %q", gotBody["text"])
	}
	if raw.Shape != ShapeLeveledLabel || raw.Emotion != "joy" || raw.Level != 7 {
		t.Errorf("raw = %+v, want joy/7 leveled label", raw)
	}
}

func TestPredictClassifierServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := Config{PredictURL: srv.URL}
	cfg.ApplyDefaults()
	c := newPredictClassifier(cfg)

	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("Classify succeeded, want error on 503")
	}
}

func TestPredictClassifierUnreachable(t *testing.T) {
	cfg := Config{PredictURL: "http://127.0.0.1:1/predict"}
	cfg.ApplyDefaults()
	c := newPredictClassifier(cfg)

	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("Classify succeeded, want connection error")
	}
}

func TestOllamaClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s, want /api/chat", r.URL.Path)
		}
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Format != "json" || req.Stream {
			t.Errorf("request = %+v, want json format without streaming", req)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: `{"emotion":"sad","emotion_level":3}`},
		})
	}))
	defer srv.Close()

	c := newOllamaClassifier(OllamaConfig{BaseURL: srv.URL, Model: "llama3"})

	raw, err := c.Classify(context.Background(), "rough week")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if raw.Shape != ShapeLeveledLabel || raw.Emotion != "sad" || raw.Level != 3 {
		t.Errorf("raw = %+v, want sad/3 leveled label", raw)
	}
}

func TestOllamaClassifierGarbageAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "I am not JSON"},
		})
	}))
	defer srv.Close()

	c := newOllamaClassifier(OllamaConfig{BaseURL: srv.URL, Model: "llama3"})

	raw, err := c.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if raw.Shape != ShapeUnrecognized {
		t.Errorf("shape = %v, want unrecognized for non-JSON answer", raw.Shape)
	}
}

func TestNewClassifierSelection(t *testing.T) {
	log := logger.NewDefault("test")

	c, err := NewClassifier(Config{}, log)
	if err != nil {
		t.Fatalf("NewClassifier default: %v", err)
	}
	if c.Name() != BackendPredict {
		t.Errorf("default backend = %q, want predict", c.Name())
	}

	c, err = NewClassifier(Config{Backend: BackendOllama}, log)
	if err != nil {
		t.Fatalf("NewClassifier ollama: %v", err)
	}
	if c.Name() != BackendOllama {
		t.Errorf("backend = %q, want ollama", c.Name())
	}
}
