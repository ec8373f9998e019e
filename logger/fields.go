package logger

// Standard field names used across the service.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
)
