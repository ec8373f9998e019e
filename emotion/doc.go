// Package emotion classifies transcribed text and normalizes classifier
// output into a canonical result.
//
// Classifier backends are swappable black boxes with one contract: return
// one of the known raw output shapes, or fail. The shapes are modeled as an
// explicit tagged union (a single label with an intensity level, a
// label-to-probability mapping, or an ordered scored list) plus an
// unrecognized variant that normalizes to the neutral default.
package emotion
