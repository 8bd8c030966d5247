package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-authgate/authcore/core"
)

// Resolve runs the providers strictly in order and reduces their answers to
// one result. The first success wins and short-circuits the chain; skips are
// ignored; distinct failures are collected and, when more than one remains,
// merged into a single failure carrying the union of their error messages.
//
// Ordering is a correctness requirement, not an optimization: which success
// wins depends on it, and side-effecting providers must not race. Providers
// are therefore never invoked concurrently within one call.
//
// A non-nil error from resolve is an internal provider failure and aborts
// the chain immediately; it is never converted into a failure result.
func Resolve[P interface{ Name() string }](
	ctx context.Context,
	logger *zap.Logger,
	providers []P,
	resolve func(context.Context, P) (*core.Result, error),
) (*core.Result, error) {
	if len(providers) == 0 {
		return core.Skip(), nil
	}

	var failures []*core.Result
	for _, p := range providers {
		res, err := resolve(ctx, p)
		if err != nil {
			return nil, err
		}
		if res == nil {
			// Lenient by contract, but a provider returning nil instead of
			// an explicit skip is usually a bug worth surfacing.
			logger.Warn("provider returned nil result, treating as skip",
				zap.String("provider", p.Name()))
			continue
		}
		if res.Skipped {
			continue
		}
		if res.Success {
			return res, nil
		}
		if !containsResult(failures, res) {
			failures = append(failures, res)
		}
	}

	switch len(failures) {
	case 0:
		return core.Skip(), nil
	case 1:
		// Hand back the provider's own result so any detail beyond the
		// error list survives aggregation.
		return failures[0], nil
	}

	merged := make([]string, 0, len(failures))
	for _, f := range failures {
		merged = append(merged, f.Errors...)
	}
	if len(merged) == 0 {
		return core.Skip(), nil
	}
	return core.Failure(merged...), nil
}

func containsResult(results []*core.Result, r *core.Result) bool {
	for _, existing := range results {
		if existing.Equal(r) {
			return true
		}
	}
	return false
}
