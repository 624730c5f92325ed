// Package provider implements the uniform note-analysis capability shared by
// every backend. A Provider is one generic type parameterized by a Variant
// record; it gates each call on configuration and input length, delegates the
// backend work to a generation.Transport, and always returns a result that
// either carries the backend output or an offline fallback.
package provider
