package client

import (
	"fmt"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// NewRetryClient creates an HTTP client with retry support and request
// authentication for talking to external verification APIs.
func NewRetryClient(
	authMode, authSecret string,
	timeout time.Duration,
	insecureSkipVerify bool,
	maxRetries int,
	retryDelay, maxRetryDelay time.Duration,
	authHeader string,
) (*retry.Client, error) {
	client, err := httpclient.NewAuthClient(
		authMode,
		authSecret,
		httpclient.WithTimeout(timeout),
		httpclient.WithHeaderName(authHeader),
		httpclient.WithInsecureSkipVerify(insecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(client),
		retry.WithMaxRetries(maxRetries),
		retry.WithInitialRetryDelay(retryDelay),
		retry.WithMaxRetryDelay(maxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
