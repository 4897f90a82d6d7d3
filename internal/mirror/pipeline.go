package mirror

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ashureev/mirror/internal/domain"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Options configures a Pipeline.
type Options struct {
	// IncludeDigest adds the session digest as a second system message.
	IncludeDigest bool
	Params        CompletionParams
	Metrics       *Metrics
	Logger        *slog.Logger
}

// Pipeline sequences validation, crisis gating, prompt assembly, completion
// and reply validation for one request. It holds no per-request state and is
// safe for concurrent use.
type Pipeline struct {
	completer Completer
	opts      Options
	logger    *slog.Logger
}

// Result is a successful pipeline run.
type Result struct {
	Response domain.ClassifiedResponse
	Outcome  Outcome
}

// NewPipeline creates a pipeline backed by completer.
func NewPipeline(completer Completer, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Params == (CompletionParams{}) {
		opts.Params = DefaultCompletionParams()
	}
	return &Pipeline{
		completer: completer,
		opts:      opts,
		logger:    logger,
	}
}

// IncludesDigest reports whether the digest step is enabled.
func (p *Pipeline) IncludesDigest() bool {
	return p.opts.IncludeDigest
}

// Handle validates a raw request body and classifies it.
func (p *Pipeline) Handle(ctx context.Context, body []byte) (Result, error) {
	conv, err := ParseRequest(body)
	if err != nil {
		if errors.Is(err, ErrMissingUserMessage) {
			p.opts.Metrics.observeOutcome(OutcomeMissingUser)
		} else {
			p.opts.Metrics.observeOutcome(OutcomeInvalidRequest)
		}
		return Result{}, err
	}
	return p.Classify(ctx, conv)
}

// Classify runs a validated conversation through the crisis gate and, when
// no crisis is detected, the completion service.
//
// Crisis content never reaches the completer. Completer failures are returned
// as *GatewayError; invalid replies resolve to FallbackResponse without error.
// A valid reply is returned unchanged unless it flags a crisis, in which case
// the fixed CrisisResponse replaces it. That is the only case in which a valid
// reply is altered.
func (p *Pipeline) Classify(ctx context.Context, conv domain.Conversation) (Result, error) {
	latest, ok := conv.LatestUserMessage()
	if !ok {
		p.opts.Metrics.observeOutcome(OutcomeMissingUser)
		return Result{}, ErrMissingUserMessage
	}

	if IsCrisis(latest.Content) {
		p.logger.WarnContext(ctx, "Crisis content detected, bypassing completion",
			"request_id", chiMiddleware.GetReqID(ctx),
			"messages", len(conv),
		)
		p.opts.Metrics.observeOutcome(OutcomeCrisis)
		p.opts.Metrics.observeBucket(string(domain.BucketOutOfScope))
		return Result{Response: CrisisResponse(), Outcome: OutcomeCrisis}, nil
	}

	digest := ""
	if p.opts.IncludeDigest {
		digest = BuildDigest(conv)
	}
	messages := AssemblePrompt(conv, digest)

	start := time.Now()
	raw, err := p.completer.Complete(ctx, messages, p.opts.Params)
	p.opts.Metrics.observeGateway(time.Since(start))
	if err != nil {
		p.opts.Metrics.observeOutcome(OutcomeGatewayError)
		return Result{}, &GatewayError{Err: err}
	}

	resp, valid := ResolveReply(raw)
	outcome := OutcomeClassified
	switch {
	case !valid:
		outcome = OutcomeFallback
		p.logger.WarnContext(ctx, "Completion reply failed validation, using fallback",
			"request_id", chiMiddleware.GetReqID(ctx),
			"reply_length", len(raw),
		)
	case resp.Crisis:
		// A crisis reply always carries the fixed redirect, never model text.
		resp = CrisisResponse()
		outcome = OutcomeModelCrisis
		p.logger.WarnContext(ctx, "Completion flagged crisis, returning fixed redirect",
			"request_id", chiMiddleware.GetReqID(ctx),
		)
	}
	p.opts.Metrics.observeOutcome(outcome)
	p.opts.Metrics.observeBucket(string(resp.Bucket))

	p.logger.DebugContext(ctx, "Classification complete",
		"request_id", chiMiddleware.GetReqID(ctx),
		"bucket", resp.Bucket,
		"crisis", resp.Crisis,
		"outcome", outcome,
		"digest", p.opts.IncludeDigest,
	)
	return Result{Response: resp, Outcome: outcome}, nil
}
