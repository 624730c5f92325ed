// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in analysis results. This package helps prevent
// the accidental leakage of backend credentials and tokens that might be included in
// error messages produced by provider backends.
package redact

import (
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	HiddenSuffix                  = "...[hidden]"
)

// Precompiled regex patterns
var (
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	bearerRegex      = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`)
	huggingFaceRegex = regexp.MustCompile(`\bhf_[A-Za-z0-9]{8,}`)
	apiKeyRegex      = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	// All patterns in application order, with their placeholders
	patterns = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{jwtTokenRegex, RedactedJWTPlaceholder},
		{bearerRegex, RedactedKeyPlaceholder},
		{huggingFaceRegex, RedactedKeyPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Values replaces every literal occurrence of the given secrets in input
// before applying the pattern-based redaction of String.
func Values(input string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		input = strings.ReplaceAll(input, secret, RedactedCredentialPlaceholder)
	}
	return String(input)
}

// Credential masks a credential for logging, keeping only its first three
// characters.
func Credential(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 3 {
		return HiddenSuffix
	}
	return string(runes[:3]) + HiddenSuffix
}
