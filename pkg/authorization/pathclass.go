package authorization

import "strings"

// PathClass buckets a request path into the area of the application it
// targets. It selects which rules of the decision table apply.
type PathClass int

const (
	// PublicArea paths bypass the gate entirely.
	PublicArea PathClass = iota
	// AdminArea covers everything under /admin.
	AdminArea
	// DashboardRoot is the bare /dashboard path, which always fans out to a
	// role-specific dashboard.
	DashboardRoot
	// AffiliateArea covers everything under /dashboard/affiliate.
	AffiliateArea
	// AdvertiserArea covers everything under /dashboard/advertiser.
	AdvertiserArea
	// OtherDashboardArea covers remaining /dashboard sub-paths that are not
	// tied to a single role.
	OtherDashboardArea
)

func (c PathClass) String() string {
	switch c {
	case AdminArea:
		return "admin"
	case DashboardRoot:
		return "dashboard-root"
	case AffiliateArea:
		return "affiliate"
	case AdvertiserArea:
		return "advertiser"
	case OtherDashboardArea:
		return "dashboard"
	default:
		return "public"
	}
}

// ClassifyPath classifies a request path by prefix matching, first match
// wins. The dashboard root is checked before the area prefixes so that the
// bare /dashboard path is never treated as a generic dashboard sub-path.
// Total over all inputs, any string that matches nothing is public.
func ClassifyPath(path string) PathClass {
	switch {
	case path == "/dashboard" || path == "/dashboard/":
		return DashboardRoot
	case strings.HasPrefix(path, "/admin"):
		return AdminArea
	case strings.HasPrefix(path, "/dashboard/affiliate"):
		return AffiliateArea
	case strings.HasPrefix(path, "/dashboard/advertiser"):
		return AdvertiserArea
	case strings.HasPrefix(path, "/dashboard"):
		return OtherDashboardArea
	default:
		return PublicArea
	}
}
