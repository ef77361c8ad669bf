package identity

// Role is the marketplace role assigned to a user. A user holds at most one
// role; the admin flag is tracked separately and is orthogonal to the role.
type Role string

const (
	// RoleAffiliate users browse and claim leads posted to the marketplace.
	RoleAffiliate Role = "AFFILIATE"
	// RoleAdvertiser users create and manage the leads they offer.
	RoleAdvertiser Role = "ADVERTISER"
)

// ParseRole maps a raw role string onto the closed Role set.
// Unknown or empty values report ok=false, they never error.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAffiliate:
		return RoleAffiliate, true
	case RoleAdvertiser:
		return RoleAdvertiser, true
	default:
		return "", false
	}
}

// Identity is the resolved set of user attributes the authorization engine
// reads. It is a value resolved once per request and never mutated.
type Identity struct {
	// ID is the user's unique identifier.
	ID string

	// Email is the user's email address.
	Email string

	// IsAdmin indicates the user may access the admin area.
	IsAdmin bool

	// Role is the user's marketplace role, nil when no role has been
	// assigned yet.
	Role *Role
}

// HasRole checks whether the identity holds the given role.
// It is safe to call on a nil identity.
func (i *Identity) HasRole(role Role) bool {
	if i == nil || i.Role == nil {
		return false
	}
	return *i.Role == role
}

// Attributes is the raw shape shared by the two identity sources: verified
// token claims on the edge path and the whoami payload on the client path.
type Attributes struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`

	// UserType carries the role as its raw string. Empty or unrecognised
	// values normalize to an identity without a role.
	UserType string `json:"userType"`
}

// Normalize converts raw attributes into an Identity. A nil input collapses
// to nil, signalling "treat as unauthenticated". Normalize never fails, a
// malformed role simply yields an identity with no role assigned.
func Normalize(attrs *Attributes) *Identity {
	if attrs == nil {
		return nil
	}

	id := &Identity{
		ID:      attrs.ID,
		Email:   attrs.Email,
		IsAdmin: attrs.IsAdmin,
	}

	if role, ok := ParseRole(attrs.UserType); ok {
		id.Role = &role
	}

	return id
}
