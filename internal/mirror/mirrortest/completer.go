// Package mirrortest provides test doubles for the mirror pipeline.
package mirrortest

import (
	"context"
	"sync"

	"github.com/ashureev/mirror/internal/domain"
	"github.com/ashureev/mirror/internal/mirror"
)

// Call records one Complete invocation.
type Call struct {
	Messages []domain.Message
	Params   mirror.CompletionParams
}

// Completer returns canned text or an error and records every call.
type Completer struct {
	Reply string
	Err   error

	mu    sync.Mutex
	calls []Call
}

var _ mirror.Completer = (*Completer)(nil)

// Complete implements mirror.Completer.
func (c *Completer) Complete(_ context.Context, messages []domain.Message, params mirror.CompletionParams) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{
		Messages: append([]domain.Message(nil), messages...),
		Params:   params,
	})
	if c.Err != nil {
		return "", c.Err
	}
	return c.Reply, nil
}

// Calls returns a copy of the recorded calls.
func (c *Completer) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}
