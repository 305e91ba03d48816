// Package log builds the zap loggers used by crystalview. Every logger
// returned here wraps its core in a redacting core that masks credential
// fields and the configured API key before anything is encoded.
package log
