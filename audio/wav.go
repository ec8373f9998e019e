package audio

import "encoding/binary"

// wavFormat describes the fmt chunk of a RIFF/WAVE stream.
type wavFormat struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// parseWAV extracts the fmt chunk and data payload from a RIFF/WAVE stream.
// Returns ok=false for anything that is not a well-formed PCM WAV container.
func parseWAV(data []byte) (wavFormat, []byte, bool) {
	var f wavFormat
	if len(data) < 44 {
		return f, nil, false
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return f, nil, false
	}

	var pcm []byte
	haveFmt := false
	// Walk chunks after the 12-byte RIFF header.
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			return f, nil, false
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return f, nil, false
			}
			f.audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			f.channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			f.sampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			f.bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
		}
		// Chunks are word-aligned.
		off = body + size + (size & 1)
	}

	if !haveFmt || pcm == nil {
		return f, nil, false
	}
	return f, pcm, true
}

// isCanonical reports whether the format already matches the canonical
// mono/16kHz/16-bit PCM target, making decoding unnecessary.
func (f wavFormat) isCanonical() bool {
	return f.audioFormat == 1 &&
		int(f.channels) == CanonicalChannels &&
		int(f.sampleRate) == CanonicalSampleRate &&
		int(f.bitsPerSample) == CanonicalBitDepth
}
