package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-authgate/authcore/core"
)

// Doer is the subset of an HTTP client the API providers need. Satisfied by
// *http.Client and by the retry client built in package client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIAuthRequest is the request payload sent to the external verification API
type APIAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Realm    string `json:"realm,omitempty"`
}

// APIMasqueradeRequest is the payload sent to the masquerade lookup endpoint
type APIMasqueradeRequest struct {
	Actor  string `json:"actor"`
	Target string `json:"target"`
}

// APIResponse is the expected response from the external API
type APIResponse struct {
	Success  bool     `json:"success"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// HTTPProvider verifies credentials against an external HTTP API.
type HTTPProvider struct {
	url    string
	client Doer
}

// NewHTTPProvider creates a new HTTP API authentication provider. The client
// is expected to carry its own authentication and retry behavior.
func NewHTTPProvider(url string, client Doer) *HTTPProvider {
	return &HTTPProvider{url: url, client: client}
}

// Authenticate verifies credentials against the external HTTP API. A 401 or
// 403, or a 2xx carrying success=false, is an expected rejection and comes
// back as a failure result.
func (p *HTTPProvider) Authenticate(
	ctx context.Context,
	username, password, realm string,
) (*Result, error) {
	resp, err := postJSON(ctx, p.client, p.url, APIAuthRequest{
		Username: username,
		Password: password,
		Realm:    realm,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return core.Failure(rejectionMessage(resp.body, MsgInvalidCredentials)), nil
	case resp.status < 200 || resp.status >= 300:
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrAPIInvalidResp, resp.status, bodyPreview(resp.raw))
	}

	if !resp.body.Success {
		return core.Failure(rejectionMessage(resp.body, MsgInvalidCredentials)), nil
	}
	if resp.body.Username == "" {
		return nil, fmt.Errorf(
			"%w: API returned success=true but missing username", ErrAPIInvalidResp)
	}

	return core.Succeed(core.NewIdentity(resp.body.Username, resp.body.Roles...)), nil
}

// Name returns provider name for logging
func (p *HTTPProvider) Name() string {
	return "http_api"
}

// HTTPMasqueradeProvider resolves masquerade targets through the same
// external API surface. A 404 means the backend does not know the target and
// maps to a skip.
type HTTPMasqueradeProvider struct {
	url    string
	client Doer
}

// NewHTTPMasqueradeProvider creates a new HTTP API masquerade provider.
func NewHTTPMasqueradeProvider(url string, client Doer) *HTTPMasqueradeProvider {
	return &HTTPMasqueradeProvider{url: url, client: client}
}

// Masquerade asks the external API to resolve the target identity.
func (p *HTTPMasqueradeProvider) Masquerade(
	ctx context.Context,
	principal *core.Identity,
	target string,
) (*Result, error) {
	resp, err := postJSON(ctx, p.client, p.url, APIMasqueradeRequest{
		Actor:  principal.Username,
		Target: target,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusNotFound:
		return core.Skip(), nil
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return core.Failure(rejectionMessage(resp.body, MsgMasqueradeRejected)), nil
	case resp.status < 200 || resp.status >= 300:
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrAPIInvalidResp, resp.status, bodyPreview(resp.raw))
	}

	if !resp.body.Success {
		return core.Failure(rejectionMessage(resp.body, MsgMasqueradeRejected)), nil
	}
	if resp.body.Username == "" {
		return nil, fmt.Errorf(
			"%w: API returned success=true but missing username", ErrAPIInvalidResp)
	}

	return core.Succeed(core.NewIdentity(resp.body.Username, resp.body.Roles...)), nil
}

// Name returns provider name for logging
func (p *HTTPMasqueradeProvider) Name() string {
	return "http_api"
}

type apiResponse struct {
	status int
	body   APIResponse
	raw    []byte
}

func postJSON(ctx context.Context, client Doer, url string, payload any) (*apiResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrAPIInvalidResp)
	}

	out := &apiResponse{status: resp.StatusCode, raw: raw}
	// Rejections may carry a JSON body with a message; non-JSON bodies are
	// tolerated for error statuses and reported via bodyPreview instead.
	if err := json.Unmarshal(raw, &out.body); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("%w: %v", ErrAPIInvalidResp, err)
		}
	}
	return out, nil
}

func rejectionMessage(body APIResponse, fallback string) string {
	if body.Message != "" {
		return body.Message
	}
	return fallback
}

// bodyPreview caps a response body at 200 characters to avoid overwhelming
// logs and error chains.
func bodyPreview(raw []byte) string {
	preview := string(raw)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return preview
}
