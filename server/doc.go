// Package server provides the HTTP surface of the moodvoice service: a
// Gin-backed server with h2c support, a standard response envelope, and the
// voice analysis routes. Request authentication is a thin JWT middleware
// that extracts the principal; everything below it trusts the user id as
// given.
package server
