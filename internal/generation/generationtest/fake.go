// Package generationtest provides a scriptable Transport for tests.
package generationtest

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-notes/internal/generation"
)

// Fake is a Transport that records every request and answers from the
// configured responses. Errors take precedence over text.
type Fake struct {
	mu sync.Mutex

	// Summary is returned for OperationSummarize
	Summary string

	// Question is returned for OperationQuestion
	Question string

	// Err, when set, is returned for every call
	Err error

	// Errs, when non-empty, is consumed one entry per call before Err applies.
	// A nil entry lets that call succeed.
	Errs []error

	calls []generation.Request
}

// Call implements generation.Transport.
func (f *Fake) Call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(f.Errs) > 0 {
		err := f.Errs[0]
		f.Errs = f.Errs[1:]
		if err != nil {
			return nil, err
		}
	} else if f.Err != nil {
		return nil, f.Err
	}

	switch req.Operation {
	case generation.OperationQuestion:
		return &generation.Response{Text: f.Question}, nil
	default:
		return &generation.Response{Text: f.Summary}, nil
	}
}

// Calls returns a copy of the recorded requests.
func (f *Fake) Calls() []generation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]generation.Request, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times Call was invoked.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
