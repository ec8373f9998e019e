package emotion

import (
	"reflect"
	"testing"
)

func TestNormalizeLeveledLabel(t *testing.T) {
	got := Normalize(LeveledLabel("joy", 8))

	if got.PrimaryEmotion != "joy" {
		t.Errorf("primary emotion = %q, want joy", got.PrimaryEmotion)
	}
	if got.EmotionLevel != 8 {
		t.Errorf("emotion level = %d, want 8", got.EmotionLevel)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", got.Confidence)
	}
	if !reflect.DeepEqual(got.Tags, []string{"joy"}) {
		t.Errorf("tags = %v, want [joy]", got.Tags)
	}
	if len(got.Alternates) != 0 {
		t.Errorf("alternates = %v, want none", got.Alternates)
	}
}

func TestNormalizeLeveledLabelClampsLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"below range", 0, 1},
		{"negative", -3, 1},
		{"above range", 15, 10},
		{"lower bound", 1, 1},
		{"upper bound", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(LeveledLabel("anger", tt.level))
			if got.EmotionLevel != tt.want {
				t.Errorf("level %d normalized to %d, want %d", tt.level, got.EmotionLevel, tt.want)
			}
		})
	}
}

func TestNormalizeLeveledLabelEmptyEmotion(t *testing.T) {
	got := Normalize(LeveledLabel("", 7))
	if !reflect.DeepEqual(got, Neutral()) {
		t.Errorf("empty emotion = %+v, want neutral default", got)
	}
}

func TestNormalizeProbabilityMap(t *testing.T) {
	got := Normalize(ProbabilityMap([]ScoredEmotion{
		{Emotion: "sad", Probability: 0.75},
		{Emotion: "angry", Probability: 0.15},
		{Emotion: "neutral", Probability: 0.10},
	}))

	if got.PrimaryEmotion != "sad" {
		t.Errorf("primary emotion = %q, want sad", got.PrimaryEmotion)
	}
	if got.EmotionLevel != 8 {
		t.Errorf("emotion level = %d, want 8 (round(0.75*10))", got.EmotionLevel)
	}
	if got.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", got.Confidence)
	}
	// 0.10 meets the inclusive alternate threshold.
	if len(got.Alternates) != 3 {
		t.Fatalf("alternates = %v, want all three entries", got.Alternates)
	}
	if !reflect.DeepEqual(got.Tags, []string{"sad", "angry", "neutral"}) {
		t.Errorf("tags = %v, want [sad angry neutral]", got.Tags)
	}
}

func TestNormalizeScoredBelowThresholdKeepsTopThree(t *testing.T) {
	got := Normalize(ScoredList([]ScoredEmotion{
		{Emotion: "a", Probability: 0.05},
		{Emotion: "b", Probability: 0.04},
		{Emotion: "c", Probability: 0.03},
		{Emotion: "d", Probability: 0.02},
	}))

	if len(got.Alternates) != 3 {
		t.Fatalf("alternates = %v, want top 3 when nothing clears the threshold", got.Alternates)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b", "c"}) {
		t.Errorf("tags = %v, want [a b c]", got.Tags)
	}
}

func TestNormalizeScoredTieBreakKeepsInputOrder(t *testing.T) {
	got := Normalize(ProbabilityMap([]ScoredEmotion{
		{Emotion: "calm", Probability: 0.5},
		{Emotion: "happy", Probability: 0.5},
	}))

	if got.PrimaryEmotion != "calm" {
		t.Errorf("primary emotion = %q, want calm (first in input order)", got.PrimaryEmotion)
	}
	if got.Alternates[0].Emotion != "calm" || got.Alternates[1].Emotion != "happy" {
		t.Errorf("alternates = %v, want input order preserved on ties", got.Alternates)
	}
}

func TestNormalizeScoredClampsConfidence(t *testing.T) {
	got := Normalize(ScoredList([]ScoredEmotion{
		{Emotion: "joy", Probability: 1.7},
	}))
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", got.Confidence)
	}
	if got.EmotionLevel != 10 {
		t.Errorf("level = %d, want clamped to 10", got.EmotionLevel)
	}
}

func TestNormalizeScoredEmpty(t *testing.T) {
	if got := Normalize(ProbabilityMap(nil)); !reflect.DeepEqual(got, Neutral()) {
		t.Errorf("empty scores = %+v, want neutral default", got)
	}
}

func TestNormalizeUnrecognized(t *testing.T) {
	got := Normalize(Unrecognized())
	want := Neutral()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unrecognized = %+v, want %+v", got, want)
	}
	if got.EmotionLevel != 5 || got.Confidence != 0.0 {
		t.Errorf("neutral default = level %d confidence %v, want level 5 confidence 0",
			got.EmotionLevel, got.Confidence)
	}
}
