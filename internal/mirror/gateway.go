package mirror

import (
	"context"

	"github.com/ashureev/mirror/internal/domain"
)

// CompletionParams are the fixed generation settings for a classification call.
type CompletionParams struct {
	MaxTokens   int
	Temperature float32
	// JSONObject requests a single JSON object as the entire reply.
	JSONObject bool
}

// DefaultCompletionParams returns bounded output, low-but-nonzero randomness and JSON mode.
func DefaultCompletionParams() CompletionParams {
	return CompletionParams{
		MaxTokens:   700,
		Temperature: 0.35,
		JSONObject:  true,
	}
}

// Completer submits an assembled message sequence to a text-completion
// service and returns the raw reply text.
//
// An empty reply is not an error; it is handled as an invalid reply.
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message, params CompletionParams) (string, error)
}

// GatewayError wraps a failed completion call.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return "completion gateway: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
