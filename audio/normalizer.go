package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
	"github.com/skillsenselab/moodvoice/process"
)

// allowedExtensions is the fixed allow-list of audio containers accepted
// before any decode attempt.
var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".flac": true,
	".webm": true,
	".mp4":  true,
}

// AllowedExtensions returns the sorted allow-list, for diagnostics.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Normalizer converts arbitrary uploaded audio into the canonical waveform.
type Normalizer struct {
	cfg    Config
	runner process.Runner
	log    *logger.Logger
}

// NewNormalizer creates an audio normalizer.
func NewNormalizer(cfg Config, runner process.Runner, log *logger.Logger) *Normalizer {
	cfg.ApplyDefaults()
	return &Normalizer{
		cfg:    cfg,
		runner: runner,
		log:    log.WithComponent("audio"),
	}
}

// Normalize validates and decodes an uploaded audio stream into a canonical
// mono 16 kHz 16-bit waveform. The filename hint supplies the container
// extension checked against the allow-list. Validation failures and decode
// failures are terminal for the request; nothing is retried here.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, filenameHint string) (*Waveform, error) {
	ext := strings.ToLower(filepath.Ext(filenameHint))
	if !allowedExtensions[ext] {
		return nil, errors.UnsupportedFormat(ext, AllowedExtensions())
	}

	size := int64(len(data))
	if size < n.cfg.MinSizeBytes {
		return nil, errors.FileTooSmall(size, n.cfg.MinSizeBytes)
	}
	if size > n.cfg.MaxSizeBytes {
		return nil, errors.FileTooLarge(size, n.cfg.MaxSizeBytes)
	}

	// Fast path: WAV already in canonical form needs no decoder.
	if ext == ".wav" {
		if format, pcm, ok := parseWAV(data); ok && format.isCanonical() {
			n.log.Debug("canonical wav, skipping decode", map[string]interface{}{
				"size_bytes": size,
			})
			return &Waveform{
				SampleRate:   CanonicalSampleRate,
				BitDepth:     CanonicalBitDepth,
				Channels:     CanonicalChannels,
				PCM:          pcm,
				SourceFormat: ext,
			}, nil
		}
	}

	return n.decode(ctx, data, ext)
}

// decode shells out to ffmpeg to produce raw s16le PCM at the canonical rate.
// The temporary input file is removed on every exit path.
func (n *Normalizer) decode(ctx context.Context, data []byte, ext string) (*Waveform, error) {
	if !n.runner.LookPath(n.cfg.FFmpegBinary) {
		return nil, errors.DecodeFailure(fmt.Errorf("decoder binary %q not found in PATH", n.cfg.FFmpegBinary))
	}

	tmp, err := os.CreateTemp(n.cfg.TempDir, "moodvoice-*"+ext)
	if err != nil {
		return nil, errors.DecodeFailure(fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			n.log.Warn("temp file cleanup failed", map[string]interface{}{
				"path":  tmpPath,
				"error": rmErr.Error(),
			})
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, errors.DecodeFailure(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.DecodeFailure(fmt.Errorf("close temp file: %w", err))
	}

	decodeCtx, cancel := context.WithTimeout(ctx, n.cfg.DecodeTimeout)
	defer cancel()

	result, err := n.runner.Run(decodeCtx, process.Command{
		Binary: n.cfg.FFmpegBinary,
		Args: []string{
			"-hide_banner", "-loglevel", "error",
			"-i", tmpPath,
			"-f", "s16le",
			"-acodec", "pcm_s16le",
			"-ac", fmt.Sprintf("%d", CanonicalChannels),
			"-ar", fmt.Sprintf("%d", CanonicalSampleRate),
			"pipe:1",
		},
	})
	if err != nil {
		detail := err.Error()
		if result != nil && len(result.Stderr) > 0 {
			detail = strings.TrimSpace(string(result.Stderr))
		}
		return nil, errors.DecodeFailure(fmt.Errorf("ffmpeg: %s", detail))
	}
	if len(result.Stdout) == 0 {
		return nil, errors.DecodeFailure(fmt.Errorf("ffmpeg produced no audio samples"))
	}

	n.log.Debug("audio decoded", map[string]interface{}{
		"source_format": ext,
		"pcm_bytes":     len(result.Stdout),
		"duration_ms":   result.Duration.Milliseconds(),
	})

	return &Waveform{
		SampleRate:   CanonicalSampleRate,
		BitDepth:     CanonicalBitDepth,
		Channels:     CanonicalChannels,
		PCM:          result.Stdout,
		SourceFormat: ext,
	}, nil
}
