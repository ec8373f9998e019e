package audio

import (
	"bytes"
	"encoding/binary"
)

// EncodeWAV wraps a waveform's PCM samples in a RIFF/WAVE container so it
// can be shipped to transcription backends that accept file uploads.
func EncodeWAV(w *Waveform) []byte {
	var buf bytes.Buffer

	dataLen := uint32(len(w.PCM))
	byteRate := uint32(w.SampleRate * w.Channels * w.BitDepth / 8)
	blockAlign := uint16(w.Channels * w.BitDepth / 8)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(w.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(w.SampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(w.BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(w.PCM)

	return buf.Bytes()
}
