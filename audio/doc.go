// Package audio normalizes uploaded voice recordings into the canonical
// waveform the transcription engine consumes: mono, 16 kHz, 16-bit signed
// PCM. Uploads are gated by an extension allow-list and size bounds before
// any decode attempt. WAV input that already matches the canonical format
// is passed through without spawning a decoder; everything else goes
// through ffmpeg.
package audio
