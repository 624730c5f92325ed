package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// ErrEmptyCredential is returned when an empty credential is stored.
var ErrEmptyCredential = errors.New("credential cannot be empty")

// CredentialSource is a synchronous key-value lookup of backend
// credentials, addressed by each provider's documented key.
type CredentialSource interface {
	// Lookup returns the credential stored under key and whether a
	// non-empty value exists.
	Lookup(key string) (string, bool)
}

// Credentials is an in-memory CredentialSource that can be updated at
// runtime. It is safe for concurrent use.
type Credentials struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewCredentials creates a Credentials store seeded with values.
// Blank values are ignored.
func NewCredentials(values map[string]string) *Credentials {
	c := &Credentials{values: make(map[string]string, len(values))}
	for k, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			c.values[k] = v
		}
	}
	return c
}

// Lookup implements CredentialSource.
func (c *Credentials) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok && v != ""
}

// Set stores a trimmed credential under key.
func (c *Credentials) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptyCredential, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// LoadCredentials reads the given credential keys from the process
// environment and, when envFile exists, from that dotenv file. Environment
// variables take precedence over the file. A missing envFile is not an
// error.
func LoadCredentials(envFile string, keys ...string) (*Credentials, error) {
	v := viper.New()
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat env file %s: %w", envFile, err)
		}
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		values[key] = v.GetString(key)
	}

	return NewCredentials(values), nil
}
