// Package api exposes note analysis over HTTP. It decodes and validates
// requests, calls the note service, and maps service errors to status codes
// without leaking internal details. Provider failures are reported inside
// a 200 response together with their fallback content.
package api
