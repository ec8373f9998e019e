package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/moodvoice/errors"
	"github.com/skillsenselab/moodvoice/logger"
)

// Context keys set by middleware.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
)

// RequestID attaches a request id to every request, honoring an inbound
// X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// AccessLog logs one line per request with status and duration.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString(ContextKeyRequestID),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields)
		} else {
			log.Info("request", fields)
		}
	}
}

// Auth extracts the authenticated principal. With auth enabled it validates
// an HS256 bearer token and takes the user id from the subject claim; with
// auth disabled it falls back to the X-User-ID header for local development.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			userID := c.GetHeader("X-User-ID")
			if userID == "" {
				userID = "anonymous"
			}
			c.Set(ContextKeyUserID, userID)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, apperrors.Unauthorized(""))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortWithError(c, apperrors.Unauthorized("Invalid authentication token."))
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			abortWithError(c, apperrors.Unauthorized("Token is missing a subject."))
			return
		}

		c.Set(ContextKeyUserID, subject)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
