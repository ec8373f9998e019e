// Package resilience provides a bulkhead for bounding concurrent access to
// CPU/GPU-bound work. The transcription engine wraps model inference in a
// bulkhead so a burst of slow inferences cannot starve request handling.
package resilience
