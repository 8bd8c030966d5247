package auth

import "github.com/go-authgate/authcore/core"

// Result is a type alias for core.Result so providers in this package can
// stay terse without re-importing core at every call site.
type Result = core.Result
