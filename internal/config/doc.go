// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It also provides the
// credential source that providers consult to decide whether a backend is
// configured, keeping credential storage separate from provider logic.
package config
