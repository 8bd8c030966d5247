package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-authgate/authcore/core"
	"github.com/go-authgate/authcore/store"
)

// LocalProvider verifies credentials against the local user store.
type LocalProvider struct {
	store *store.Store
}

// NewLocalProvider creates a new local authentication provider
func NewLocalProvider(s *store.Store) *LocalProvider {
	return &LocalProvider{store: s}
}

// Authenticate verifies credentials against the user store. An unknown user
// or a wrong password is an expected rejection, reported as a failure result.
func (p *LocalProvider) Authenticate(
	ctx context.Context,
	username, password, realm string,
) (*Result, error) {
	user, err := p.store.GetUserByUsername(ctx, username, realm)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return core.Failure(MsgInvalidCredentials), nil
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	); err != nil {
		return core.Failure(MsgInvalidCredentials), nil
	}

	return core.Succeed(core.NewIdentity(user.Username, user.RoleList()...)), nil
}

// Name returns provider name for logging
func (p *LocalProvider) Name() string {
	return "local"
}

// LocalMasqueradeProvider resolves masquerade targets from the local user
// store. An unknown target is a skip, not a failure, so another configured
// backend gets a chance to answer.
type LocalMasqueradeProvider struct {
	store *store.Store
	realm string
}

// NewLocalMasqueradeProvider creates a new store-backed masquerade provider
// scoped to the given realm.
func NewLocalMasqueradeProvider(s *store.Store, realm string) *LocalMasqueradeProvider {
	return &LocalMasqueradeProvider{store: s, realm: realm}
}

// Masquerade looks up the target user and returns their identity.
func (p *LocalMasqueradeProvider) Masquerade(
	ctx context.Context,
	principal *core.Identity,
	target string,
) (*Result, error) {
	user, err := p.store.GetUserByUsername(ctx, target, p.realm)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return core.Skip(), nil
		}
		return nil, err
	}

	return core.Succeed(core.NewIdentity(user.Username, user.RoleList()...)), nil
}

// Name returns provider name for logging
func (p *LocalMasqueradeProvider) Name() string {
	return "local"
}
