// Package config loads and validates the service configuration from a YAML
// file, a .env file, and environment variables, in increasing precedence.
package config
