// Package mood derives the application-facing 1..5 mood level from the
// classifier's 1..10 emotion intensity and owns the per-(user, date) mood
// record: a single entry per user per calendar day, created on first voice
// analysis and overwritten in place by later ones. CSV tag encoding is a
// storage-layer convenience and never leaves the store.
package mood
