package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/go-authgate/authcore/core"
)

// tokenClaims is the claim set the token provider understands. Roles carry
// the target identity's role names; an optional realm claim scopes the token
// to one realm.
type tokenClaims struct {
	Roles []string `json:"roles,omitempty"`
	Realm string   `json:"realm,omitempty"`
	jwt.RegisteredClaims
}

// TokenProvider authenticates a bearer token presented in the password slot.
// It covers the token-validator class of backends: the credential is a
// signed JWT whose subject must match the requested username.
type TokenProvider struct {
	secret []byte
	issuer string
}

// NewTokenProvider creates a token provider verifying HS256 tokens signed
// with secret. If issuer is non-empty the token's iss claim must match.
func NewTokenProvider(secret, issuer string) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), issuer: issuer}
}

// Authenticate verifies the token and resolves the identity from its claims.
// A token scoped to a different realm is a skip; a malformed, expired or
// mismatched token is a failure.
func (p *TokenProvider) Authenticate(
	ctx context.Context,
	username, password, realm string,
) (*Result, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(password, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return core.Failure(MsgInvalidToken), nil
	}

	if claims.Realm != "" && !strings.EqualFold(claims.Realm, realm) {
		return core.Skip(), nil
	}
	if !strings.EqualFold(claims.Subject, username) {
		return core.Failure(MsgInvalidToken), nil
	}

	return core.Succeed(core.NewIdentity(claims.Subject, claims.Roles...)), nil
}

// Name returns provider name for logging
func (p *TokenProvider) Name() string {
	return "token"
}
