// Package logger provides structured logging for the moodvoice service,
// built on zerolog. Components obtain a tagged child logger via
// WithComponent so every line carries the emitting subsystem.
package logger
