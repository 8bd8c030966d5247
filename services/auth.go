package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/go-authgate/authcore/auth"
	"github.com/go-authgate/authcore/core"
)

// AuthService coordinates the configured provider chains and produces one
// deterministic authentication or masquerade decision per call.
//
// Configuration is fixed at construction and never mutated, and every result
// is freshly built, so concurrent calls need no locking.
type AuthService struct {
	realm           string
	authProviders   []core.AuthenticationProvider
	masqProviders   []core.MasqueradeProvider
	policy          core.MasqueradePolicy
	restrictedRoles map[string]struct{}
	logger          *zap.Logger
	metrics         core.Recorder
}

// NewAuthService builds the orchestration service. restrictedRoles is the
// deny-list a masquerade target must not exceed; role comparison throughout
// is case-insensitive. A nil logger or recorder falls back to a no-op.
func NewAuthService(
	realm string,
	authProviders []core.AuthenticationProvider,
	masqProviders []core.MasqueradeProvider,
	policy core.MasqueradePolicy,
	restrictedRoles []string,
	logger *zap.Logger,
	metrics core.Recorder,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = core.NoopRecorder{}
	}

	restricted := make(map[string]struct{}, len(restrictedRoles))
	for _, r := range restrictedRoles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			restricted[r] = struct{}{}
		}
	}

	return &AuthService{
		realm:           realm,
		authProviders:   authProviders,
		masqProviders:   masqProviders,
		policy:          policy,
		restrictedRoles: restricted,
		logger:          logger,
		metrics:         metrics,
	}
}

// Authenticate verifies credentials against the provider chain in the
// service's configured realm.
func (s *AuthService) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Result, error) {
	return s.AuthenticateRealm(ctx, username, password, s.realm)
}

// AuthenticateRealm verifies credentials against the provider chain in an
// explicit realm. Success or failure is entirely provider-determined; no
// authorization logic applies on this path.
func (s *AuthService) AuthenticateRealm(
	ctx context.Context,
	username, password, realm string,
) (*core.Result, error) {
	start := time.Now()

	res, err := auth.Resolve(ctx, s.logger, s.authProviders,
		func(ctx context.Context, p core.AuthenticationProvider) (*core.Result, error) {
			return p.Authenticate(ctx, username, password, realm)
		})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuthAttempt(realm, outcome(res), time.Since(start))
	s.logger.Debug("authentication resolved",
		zap.String("username", username),
		zap.String("realm", realm),
		zap.String("outcome", outcome(res)))
	return res, nil
}

// Masquerade resolves the identity the principal wants to act as, after two
// independent authorization gates: permission to masquerade at all, and
// privilege containment on the resolved target.
func (s *AuthService) Masquerade(
	ctx context.Context,
	principal *core.Identity,
	target string,
) (*core.Result, error) {
	if principal == nil {
		return nil, ErrNilPrincipal
	}

	if len(s.masqProviders) == 0 {
		s.metrics.RecordMasquerade("unconfigured")
		return core.Failure(core.MsgNoMasqueradeProviders), nil
	}

	if !s.HasMasqueradePermission(principal) {
		s.metrics.RecordMasquerade("denied")
		s.logger.Warn("masquerade denied",
			zap.String("principal", principal.Username))
		return core.AccessDenied(), nil
	}

	if target == "" {
		s.metrics.RecordMasquerade("invalid_target")
		return core.InvalidMasqueradeTarget(), nil
	}

	res, err := auth.Resolve(ctx, s.logger, s.masqProviders,
		func(ctx context.Context, p core.MasqueradeProvider) (*core.Result, error) {
			return p.Masquerade(ctx, principal, target)
		})
	if err != nil {
		return nil, err
	}

	if res.Success && !s.IsAccessibleMasqueradeTarget(principal, res.Identity) {
		s.metrics.RecordMasquerade("restricted")
		s.logger.Warn("masquerade target exceeds principal privileges",
			zap.String("principal", principal.Username),
			zap.String("target", target))
		return core.Failure(core.MsgInsufficientPrivileges), nil
	}

	s.metrics.RecordMasquerade(outcome(res))
	return res, nil
}

// HasMasqueradePermission reports whether the principal passes the
// masquerade permission gate under the configured policy.
func (s *AuthService) HasMasqueradePermission(principal *core.Identity) bool {
	return s.policy.Permits(principal)
}

// IsAccessibleMasqueradeTarget reports whether the principal may act as the
// target: any role the target holds beyond the principal's own must not
// appear in the restricted deny-list. With no deny-list configured every
// target is accessible.
func (s *AuthService) IsAccessibleMasqueradeTarget(principal, target *core.Identity) bool {
	if len(s.restrictedRoles) == 0 {
		return true
	}
	for _, role := range target.RolesNotHeldBy(principal) {
		if _, restricted := s.restrictedRoles[role]; restricted {
			return false
		}
	}
	return true
}

func outcome(r *core.Result) string {
	switch {
	case r.Success:
		return "success"
	case r.Skipped:
		return "skip"
	default:
		return "failure"
	}
}
