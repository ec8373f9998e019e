package server

import (
	"context"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/voice"
)

// maxUploadBytes caps how much of an upload the handler reads. It sits just
// above the normalizer's size cap so oversize files are still seen and
// rejected with the proper error rather than silently truncated.
const maxUploadBytes = 26 << 20

// VoiceHealth reports readiness of the pipeline's collaborators.
type VoiceHealth interface {
	HealthCheck(ctx context.Context) error
}

// RegisterRoutes mounts the voice analysis API and the health endpoint.
func RegisterRoutes(s *Server, svc *voice.Service, health VoiceHealth) {
	engine := s.GinEngine()

	engine.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health.HealthCheck(c.Request.Context()); err != nil {
				RespondWithError(c, apperrors.Internal(err))
				return
			}
		}
		RespondOK(c, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/voice")
	api.Use(Auth(s.config.Auth))

	api.POST("/analyze", func(c *gin.Context) {
		data, filename, err := readUpload(c, "audio_file")
		if err != nil {
			RespondWithError(c, err)
			return
		}

		saveToMood := true
		if raw, ok := c.GetPostForm("save_to_mood"); ok {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				RespondWithError(c, apperrors.InvalidInput("save_to_mood must be a boolean"))
				return
			}
			saveToMood = parsed
		}

		result, err := svc.Analyze(c.Request.Context(), voice.AnalyzeRequest{
			UserID:       c.GetString(ContextKeyUserID),
			Audio:        data,
			FilenameHint: filename,
			SaveToMood:   saveToMood,
			MoodDate:     c.PostForm("mood_date"),
		})
		if err != nil {
			RespondWithError(c, err)
			return
		}
		RespondOK(c, result)
	})

	api.POST("/transcribe", func(c *gin.Context) {
		data, filename, err := readUpload(c, "audio_file")
		if err != nil {
			RespondWithError(c, err)
			return
		}

		result, err := svc.TranscribeOnly(c.Request.Context(), voice.TranscribeRequest{
			UserID:       c.GetString(ContextKeyUserID),
			Audio:        data,
			FilenameHint: filename,
			LanguageHint: c.PostForm("language"),
		})
		if err != nil {
			RespondWithError(c, err)
			return
		}
		RespondOK(c, result)
	})
}

// readUpload pulls the uploaded file out of the multipart form.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperrors.InvalidInput(field + " file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	return data, fileHeader.Filename, nil
}
