package core

import "context"

// AuthenticationProvider is the interface credential-verification backends
// must implement. Expected rejections (bad credentials, unauthorized) come
// back as failure Results; a non-nil error means the provider itself broke
// and is propagated to the caller unmasked.
type AuthenticationProvider interface {
	Authenticate(ctx context.Context, username, password, realm string) (*Result, error)
	Name() string
}

// MasqueradeProvider resolves the identity a principal wants to act as.
// The same Result/error split applies: "target not allowed" is a failure
// Result, "target unknown to this backend" is a skip.
type MasqueradeProvider interface {
	Masquerade(ctx context.Context, principal *Identity, target string) (*Result, error)
	Name() string
}
