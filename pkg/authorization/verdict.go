package authorization

import (
	"net/url"
	"strings"
)

// Redirect destinations used by the decision table.
const (
	LoginPath          = "/auth/login"
	AdminHomePath      = "/admin"
	AffiliateHomePath  = "/dashboard/affiliate"
	AdvertiserHomePath = "/dashboard/advertiser"
)

// Redirect reasons surfaced to the user via the login page message query
// parameter. The strings are part of the product surface, do not reword.
const (
	ReasonLoginRequired  = "please login first"
	ReasonAuthFailed     = "Authentication failed"
	ReasonAdminOnly      = "Admin access only"
	ReasonAffiliateOnly  = "Affiliate access only"
	ReasonAdvertiserOnly = "Advertiser access only"
	ReasonRoleUnassigned = "Role not assigned"
)

// MessageParam is the query parameter carrying the redirect reason.
const MessageParam = "message"

// Verdict is the engine's decision for a single request: either allow it to
// proceed, or redirect it to a destination with an optional reason. Exactly
// one verdict is produced per evaluation and it carries no hidden state.
type Verdict struct {
	allowed     bool
	destination string
	reason      string
}

// Allow produces the verdict that lets the request proceed untouched.
func Allow() Verdict {
	return Verdict{allowed: true}
}

// RedirectTo produces a redirect verdict. The reason may be empty for soft
// redirects such as sending a user to their own dashboard.
func RedirectTo(destination, reason string) Verdict {
	return Verdict{destination: destination, reason: reason}
}

// AuthenticationFailed is the verdict callers substitute when identity
// resolution itself fails. It is behaviourally identical to the
// unauthenticated redirect but keeps a distinct reason so the two causes
// stay distinguishable in logs and on the login page.
func AuthenticationFailed() Verdict {
	return RedirectTo(LoginPath, ReasonAuthFailed)
}

// Allowed reports whether the request may proceed.
func (v Verdict) Allowed() bool {
	return v.allowed
}

// Destination returns the redirect target path, empty for allow verdicts.
func (v Verdict) Destination() string {
	return v.destination
}

// Reason returns the human readable cause attached to a redirect, empty for
// allow verdicts and soft redirects.
func (v Verdict) Reason() string {
	return v.reason
}

// RedirectURL builds the concrete URL a caller should redirect to, resolving
// the destination against base when one is given and appending the reason as
// the message query parameter. Allow verdicts have no URL and return nil.
func (v Verdict) RedirectURL(base *url.URL) *url.URL {
	if v.allowed {
		return nil
	}

	u := &url.URL{Path: v.destination}
	if base != nil {
		u = base.ResolveReference(u)
	}

	if v.reason != "" {
		// url.Values encodes spaces as "+", the login page and the log
		// format both expect "%20".
		u.RawQuery = MessageParam + "=" + strings.ReplaceAll(url.QueryEscape(v.reason), "+", "%20")
	}

	return u
}

// String summarises the verdict for logging.
func (v Verdict) String() string {
	if v.allowed {
		return "allow"
	}
	if v.reason == "" {
		return "redirect:" + v.destination
	}
	return "redirect:" + v.destination + " (" + v.reason + ")"
}
