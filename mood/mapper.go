package mood

// Level bounds of the application mood scale.
const (
	MinLevel = 1
	MaxLevel = 5
)

// LevelFromEmotion compresses a 1..10 emotion intensity into the 1..5 mood
// scale. The mapping is a total monotonic step function; boundaries belong
// to the lower bucket. Out-of-range input is absorbed by the outer buckets.
//
//	1-2  -> 1 (very bad)
//	3-4  -> 2 (bad)
//	5-6  -> 3 (neutral)
//	7-8  -> 4 (good)
//	9-10 -> 5 (excellent)
func LevelFromEmotion(emotionLevel int) int {
	switch {
	case emotionLevel <= 2:
		return 1
	case emotionLevel <= 4:
		return 2
	case emotionLevel <= 6:
		return 3
	case emotionLevel <= 8:
		return 4
	default:
		return 5
	}
}
