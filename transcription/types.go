package transcription

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Language is the detected or requested language, if known.
	Language string `json:"language,omitempty"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
}
