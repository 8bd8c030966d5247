package core

import "sort"

// Fixed messages carried by the canonical failure results.
const (
	MsgAccessDenied            = "Access denied."
	MsgInvalidMasqueradeTarget = "Invalid masquerade target."
	MsgNoMasqueradeProviders   = "No masquerade providers configured in the application."
	MsgInsufficientPrivileges  = "Insufficient privileges to masquerade as target user."
)

// Result is the single outcome of an authentication or masquerade attempt.
// Exactly one of three states holds: success (Identity set), skipped (the
// provider expressed no opinion), or failure (one or more error messages).
//
// Results are immutable values created per call; Errors are kept sorted and
// de-duplicated so equality is order-irrelevant.
type Result struct {
	Success  bool
	Skipped  bool
	Identity *Identity
	Errors   []string
}

// Skip returns the "no opinion" result.
func Skip() *Result {
	return &Result{Skipped: true}
}

// Succeed returns a successful result carrying the resolved identity.
func Succeed(id *Identity) *Result {
	return &Result{Success: true, Identity: id}
}

// Failure returns a failed result with the given messages, de-duplicated.
func Failure(msgs ...string) *Result {
	return &Result{Errors: dedupe(msgs)}
}

// AccessDenied is the fixed failure for a principal not permitted to
// masquerade.
func AccessDenied() *Result {
	return Failure(MsgAccessDenied)
}

// InvalidMasqueradeTarget is the fixed failure for a missing or empty
// masquerade target.
func InvalidMasqueradeTarget() *Result {
	return Failure(MsgInvalidMasqueradeTarget)
}

// Failed reports whether the result is an explicit failure, as opposed to a
// success or a skip.
func (r *Result) Failed() bool {
	return r != nil && !r.Success && !r.Skipped
}

// Equal reports whether two results describe the same outcome. Error order
// is irrelevant; Errors are stored sorted, so a slice compare suffices.
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Success != other.Success || r.Skipped != other.Skipped {
		return false
	}
	if !r.Identity.Equal(other.Identity) {
		return false
	}
	if len(r.Errors) != len(other.Errors) {
		return false
	}
	for i, e := range r.Errors {
		if e != other.Errors[i] {
			return false
		}
	}
	return true
}

func dedupe(msgs []string) []string {
	seen := make(map[string]struct{}, len(msgs))
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
