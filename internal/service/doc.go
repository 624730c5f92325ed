// Package service contains the application-specific use cases. It resolves
// the provider a caller asked for and runs the summary and flashcard
// operations, concurrently when both are requested.
//
// The service layer depends on the provider abstraction and domain results,
// never on a specific backend transport, so every caller surface (HTTP API,
// CLI) shares one code path.
package service
