package auth

import "errors"

// Messages carried by provider failure results.
const (
	MsgInvalidCredentials = "invalid username or password"
	MsgInvalidToken       = "invalid or expired token"
	MsgMasqueradeRejected = "masquerade request rejected"
)

// HTTP API errors. These signal broken communication with the verification
// API, not rejected credentials, and therefore surface as Go errors.
var (
	ErrAPIConnection  = errors.New("failed to connect to authentication API")
	ErrAPIInvalidResp = errors.New("invalid response from authentication API")
)
