// Package observability wires OpenTelemetry tracing for the moodvoice
// service. When disabled, the global no-op tracer is left in place and
// span creation throughout the pipeline costs nothing.
package observability
