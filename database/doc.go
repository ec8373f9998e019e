// Package database provides the GORM-backed persistence layer for the
// moodvoice service: a sqlite connection with retry, pooling, structured
// logging, and auto-migration of the mood schema.
package database
