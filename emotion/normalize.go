package emotion

import (
	"math"
	"sort"
)

// NeutralEmotion is the label used when no usable signal exists.
const NeutralEmotion = "neutral"

// alternateThreshold is the inclusive probability bar for alternates.
const alternateThreshold = 0.1

// Normalized is the canonical classification result, always produced
// regardless of which raw shape arrived. EmotionLevel is clamped to 1..10
// and Confidence to 0..1; PrimaryEmotion defaults to "neutral".
type Normalized struct {
	// PrimaryEmotion is the dominant detected emotion.
	PrimaryEmotion string `json:"primary_emotion"`
	// EmotionLevel is the intensity on a 1..10 scale.
	EmotionLevel int `json:"emotion_level"`
	// Alternates are secondary emotions ordered by descending probability.
	Alternates []ScoredEmotion `json:"alternates,omitempty"`
	// Confidence is the derived confidence in 0..1.
	Confidence float64 `json:"confidence"`
	// Tags are suggested tags, insertion order preserved.
	Tags []string `json:"tags"`
}

// Neutral returns the default result for absent or unusable signal.
func Neutral() Normalized {
	return Normalized{
		PrimaryEmotion: NeutralEmotion,
		EmotionLevel:   5,
		Confidence:     0.0,
		Tags:           []string{NeutralEmotion},
	}
}

// Normalize maps any raw classifier output into the canonical result.
func Normalize(raw RawOutput) Normalized {
	switch raw.Shape {
	case ShapeLeveledLabel:
		return normalizeLeveled(raw)
	case ShapeProbabilityMap, ShapeScoredList:
		return normalizeScored(raw)
	default:
		return Neutral()
	}
}

func normalizeLeveled(raw RawOutput) Normalized {
	if raw.Emotion == "" {
		return Neutral()
	}
	level := clampLevel(raw.Level)
	return Normalized{
		PrimaryEmotion: raw.Emotion,
		EmotionLevel:   level,
		Confidence:     float64(level) / 10.0,
		Tags:           []string{raw.Emotion},
	}
}

func normalizeScored(raw RawOutput) Normalized {
	if len(raw.Scores) == 0 {
		return Neutral()
	}

	// Stable sort keeps input order as the tie-break for equal probabilities.
	sorted := make([]ScoredEmotion, len(raw.Scores))
	copy(sorted, raw.Scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	top := sorted[0]
	level := clampLevel(int(math.Round(top.Probability * 10)))

	alternates := make([]ScoredEmotion, 0, len(sorted))
	for _, s := range sorted {
		if s.Probability >= alternateThreshold {
			alternates = append(alternates, s)
		}
	}
	if len(alternates) == 0 {
		n := len(sorted)
		if n > 3 {
			n = 3
		}
		alternates = append(alternates, sorted[:n]...)
	}

	tags := make([]string, 0, len(alternates))
	for _, s := range alternates {
		tags = append(tags, s.Emotion)
	}

	return Normalized{
		PrimaryEmotion: top.Emotion,
		EmotionLevel:   level,
		Alternates:     alternates,
		Confidence:     clampConfidence(top.Probability),
		Tags:           tags,
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 10 {
		return 10
	}
	return level
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
