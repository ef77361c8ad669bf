package authorization

import (
	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
)

// Context bundles the inputs to a single evaluation. It is constructed fresh
// per call and only read by the engine. A nil Identity means the request
// carries no resolved identity.
type Context struct {
	Path     string
	Identity *identityapi.Identity
}

// Engine decides, for every incoming request, whether to allow it, and if
// not, where to redirect it. Implementations must be pure: the same context
// always yields the same verdict.
type Engine interface {
	Decide(ctx Context) Verdict
}

// NewEngine constructs the marketplace rule engine. It is stateless and safe
// for concurrent use from any number of goroutines.
func NewEngine() Engine {
	return engine{}
}

type engine struct{}

// Decide evaluates the decision table in strict order, the first applicable
// rule determines the verdict. The cross-role redirects in the affiliate and
// advertiser areas deliberately take precedence over the generic "access
// only" login redirect so a misdirected user lands on their own dashboard
// instead of bouncing to login.
func (engine) Decide(ctx Context) Verdict {
	class := ClassifyPath(ctx.Path)
	if class == PublicArea {
		return Allow()
	}

	id := ctx.Identity
	if id == nil {
		return RedirectTo(LoginPath, ReasonLoginRequired)
	}

	switch class {
	case DashboardRoot:
		// The bare dashboard path always fans out, admin first.
		switch {
		case id.IsAdmin:
			return RedirectTo(AdminHomePath, "")
		case id.HasRole(identityapi.RoleAffiliate):
			return RedirectTo(AffiliateHomePath, "")
		case id.HasRole(identityapi.RoleAdvertiser):
			return RedirectTo(AdvertiserHomePath, "")
		default:
			return RedirectTo(LoginPath, ReasonRoleUnassigned)
		}

	case AdminArea:
		if !id.IsAdmin {
			return RedirectTo(LoginPath, ReasonAdminOnly)
		}

	case AffiliateArea:
		if !id.HasRole(identityapi.RoleAffiliate) {
			if id.HasRole(identityapi.RoleAdvertiser) {
				return RedirectTo(AdvertiserHomePath, "")
			}
			return RedirectTo(LoginPath, ReasonAffiliateOnly)
		}

	case AdvertiserArea:
		if !id.HasRole(identityapi.RoleAdvertiser) {
			if id.HasRole(identityapi.RoleAffiliate) {
				return RedirectTo(AffiliateHomePath, "")
			}
			return RedirectTo(LoginPath, ReasonAdvertiserOnly)
		}

	case OtherDashboardArea:
		if id.Role == nil {
			return RedirectTo(LoginPath, ReasonRoleUnassigned)
		}
	}

	return Allow()
}
