// Package voice orchestrates the analysis pipeline: normalize audio,
// transcribe, classify emotion, derive a mood level, and optionally persist
// a mood entry.
//
// Failure isolation is the point of this package. A classifier failure
// after a successful transcription degrades to the neutral result instead
// of failing the request, and a persistence failure never discards the
// computed analysis: the response simply omits the mood entry.
package voice
