// Package errors provides the unified error type for the moodvoice service.
// Errors carry a machine-readable code, a client-safe message, and an HTTP
// status so handlers can translate pipeline failures without switching on
// error strings. Domain constructors cover the voice pipeline taxonomy:
// unsupported format, decode failure, empty transcription, transcription
// backend failure, classification failure, and persistence failure.
package errors
