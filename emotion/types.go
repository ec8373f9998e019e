package emotion

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Shape discriminates the raw classifier output variants.
type Shape int

const (
	// ShapeUnrecognized is the catch-all for output matching no known shape.
	ShapeUnrecognized Shape = iota
	// ShapeLeveledLabel is a single emotion with a 1..10 intensity level.
	ShapeLeveledLabel
	// ShapeProbabilityMap maps labels to probabilities, keys unique.
	ShapeProbabilityMap
	// ShapeScoredList is an ordered sequence of label/probability pairs.
	ShapeScoredList
)

// ScoredEmotion pairs a label with a probability.
type ScoredEmotion struct {
	Emotion     string  `json:"emotion"`
	Probability float64 `json:"probability"`
}

// RawOutput is the tagged union of classifier output shapes. Scores holds
// the entries of probability-map and scored-list variants in the order they
// appeared in the input; that order is the tie-break for equal
// probabilities.
type RawOutput struct {
	Shape Shape

	// Emotion and Level are set for ShapeLeveledLabel.
	Emotion string
	Level   int

	// Scores is set for ShapeProbabilityMap and ShapeScoredList.
	Scores []ScoredEmotion
}

// LeveledLabel constructs a single-label raw output.
func LeveledLabel(emotion string, level int) RawOutput {
	return RawOutput{Shape: ShapeLeveledLabel, Emotion: emotion, Level: level}
}

// ProbabilityMap constructs a probability-map raw output from entries in
// input order.
func ProbabilityMap(scores []ScoredEmotion) RawOutput {
	return RawOutput{Shape: ShapeProbabilityMap, Scores: scores}
}

// ScoredList constructs an ordered scored-list raw output.
func ScoredList(scores []ScoredEmotion) RawOutput {
	return RawOutput{Shape: ShapeScoredList, Scores: scores}
}

// Unrecognized constructs the catch-all raw output.
func Unrecognized() RawOutput {
	return RawOutput{Shape: ShapeUnrecognized}
}

// DecodeRaw inspects a classifier response body and routes it to one of the
// known shapes. Classifiers in the wild disagree on field names, so label
// and score keys accept common aliases. Anything unparseable becomes the
// unrecognized variant; decoding never fails.
func DecodeRaw(data []byte) RawOutput {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Unrecognized()
	}

	switch trimmed[0] {
	case '{':
		return decodeObject(trimmed)
	case '[':
		return decodeList(trimmed)
	default:
		return Unrecognized()
	}
}

func decodeObject(data []byte) RawOutput {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return Unrecognized()
	}

	// Leveled label: an emotion name plus an intensity level.
	emotion := stringField(obj, "emotion", "emotion_title", "title")
	level, hasLevel := intField(obj, "emotion_level", "level", "emotionLevel")
	if emotion != "" && hasLevel {
		return LeveledLabel(emotion, level)
	}

	// Nested probability map under an "emotions" key.
	if nested, ok := obj["emotions"]; ok {
		if scores, ok := decodeOrderedMap(nested); ok {
			return ProbabilityMap(scores)
		}
	}

	// Flat map of label -> probability.
	if scores, ok := decodeOrderedMap(data); ok {
		return ProbabilityMap(scores)
	}

	return Unrecognized()
}

func decodeList(data []byte) RawOutput {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return Unrecognized()
	}

	var scores []ScoredEmotion
	for _, item := range items {
		label := stringField(item, "emotion", "title", "name")
		prob, ok := floatField(item, "probability", "prob", "score")
		if label == "" || !ok {
			continue
		}
		scores = append(scores, ScoredEmotion{Emotion: label, Probability: prob})
	}
	if len(scores) == 0 {
		return Unrecognized()
	}
	return ScoredList(scores)
}

// decodeOrderedMap parses a JSON object of label -> numeric probability,
// preserving document order so equal probabilities keep a stable tie-break.
// Returns ok=false when any value is not numeric.
func decodeOrderedMap(data []byte) ([]ScoredEmotion, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var scores []ScoredEmotion
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		val, ok := valTok.(float64)
		if !ok {
			return nil, false
		}
		scores = append(scores, ScoredEmotion{Emotion: key, Probability: val})
	}
	if len(scores) == 0 {
		return nil, false
	}
	return scores, true
}

func stringField(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func intField(obj map[string]json.RawMessage, keys ...string) (int, bool) {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return int(f), true
		}
		// Some classifiers quote the level.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

func floatField(obj map[string]json.RawMessage, keys ...string) (float64, bool) {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
