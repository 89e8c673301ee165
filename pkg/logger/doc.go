// Package logger builds the slog logger used by ping-url. Records are written
// as human-readable text, or as JSON when running with the prod environment.
package logger
