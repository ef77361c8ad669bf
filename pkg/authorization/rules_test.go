package authorization

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
)

func roleRef(r identityapi.Role) *identityapi.Role {
	return &r
}

var _ = ginkgo.Describe("Engine", func() {
	var engine Engine

	ginkgo.BeforeEach(func() {
		engine = NewEngine()
	})

	type decideTableInput struct {
		path                string
		identity            *identityapi.Identity
		expectedAllow       bool
		expectedDestination string
		expectedReason      string
	}

	ginkgo.DescribeTable("Decide",
		func(in decideTableInput) {
			verdict := engine.Decide(Context{Path: in.path, Identity: in.identity})
			Expect(verdict.Allowed()).To(Equal(in.expectedAllow))
			Expect(verdict.Destination()).To(Equal(in.expectedDestination))
			Expect(verdict.Reason()).To(Equal(in.expectedReason))
		},
		ginkgo.Entry("public path with no identity", decideTableInput{
			path:          "/home",
			expectedAllow: true,
		}),
		ginkgo.Entry("public path with an identity", decideTableInput{
			path:          "/about",
			identity:      &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAffiliate)},
			expectedAllow: true,
		}),
		ginkgo.Entry("root path is public", decideTableInput{
			path:          "/",
			expectedAllow: true,
		}),
		ginkgo.Entry("empty path is public", decideTableInput{
			path:          "",
			expectedAllow: true,
		}),
		ginkgo.Entry("admin path with no identity", decideTableInput{
			path:                "/admin/users",
			expectedDestination: LoginPath,
			expectedReason:      ReasonLoginRequired,
		}),
		ginkgo.Entry("dashboard path with no identity", decideTableInput{
			path:                "/dashboard/affiliate",
			expectedDestination: LoginPath,
			expectedReason:      ReasonLoginRequired,
		}),
		ginkgo.Entry("dashboard root fans admin out to the admin area", decideTableInput{
			path:                "/dashboard",
			identity:            &identityapi.Identity{ID: "u1", IsAdmin: true},
			expectedDestination: AdminHomePath,
		}),
		ginkgo.Entry("dashboard root prefers admin over an assigned role", decideTableInput{
			path:                "/dashboard",
			identity:            &identityapi.Identity{ID: "u1", IsAdmin: true, Role: roleRef(identityapi.RoleAffiliate)},
			expectedDestination: AdminHomePath,
		}),
		ginkgo.Entry("dashboard root fans affiliates out to their dashboard", decideTableInput{
			path:                "/dashboard",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAffiliate)},
			expectedDestination: AffiliateHomePath,
		}),
		ginkgo.Entry("dashboard root fans advertisers out to their dashboard", decideTableInput{
			path:                "/dashboard",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAdvertiser)},
			expectedDestination: AdvertiserHomePath,
		}),
		ginkgo.Entry("dashboard root with trailing slash behaves identically", decideTableInput{
			path:                "/dashboard/",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAdvertiser)},
			expectedDestination: AdvertiserHomePath,
		}),
		ginkgo.Entry("dashboard root without a role bounces to login", decideTableInput{
			path:                "/dashboard",
			identity:            &identityapi.Identity{ID: "u1"},
			expectedDestination: LoginPath,
			expectedReason:      ReasonRoleUnassigned,
		}),
		ginkgo.Entry("admin area rejects non-admins", decideTableInput{
			path:                "/admin/users",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAffiliate)},
			expectedDestination: LoginPath,
			expectedReason:      ReasonAdminOnly,
		}),
		ginkgo.Entry("admin area admits admins", decideTableInput{
			path:          "/admin/users",
			identity:      &identityapi.Identity{ID: "u1", IsAdmin: true},
			expectedAllow: true,
		}),
		ginkgo.Entry("affiliate area admits affiliates", decideTableInput{
			path:          "/dashboard/affiliate/leads",
			identity:      &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAffiliate)},
			expectedAllow: true,
		}),
		ginkgo.Entry("affiliate area soft-redirects advertisers to their dashboard", decideTableInput{
			path:                "/dashboard/affiliate/leads",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAdvertiser)},
			expectedDestination: AdvertiserHomePath,
		}),
		ginkgo.Entry("affiliate area bounces roleless users to login", decideTableInput{
			path:                "/dashboard/affiliate",
			identity:            &identityapi.Identity{ID: "u1"},
			expectedDestination: LoginPath,
			expectedReason:      ReasonAffiliateOnly,
		}),
		ginkgo.Entry("advertiser area soft-redirects affiliates to their dashboard", decideTableInput{
			path:                "/dashboard/advertiser",
			identity:            &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAffiliate)},
			expectedDestination: AffiliateHomePath,
		}),
		ginkgo.Entry("advertiser area bounces roleless admins to login", decideTableInput{
			path:                "/dashboard/advertiser",
			identity:            &identityapi.Identity{ID: "u1", IsAdmin: true},
			expectedDestination: LoginPath,
			expectedReason:      ReasonAdvertiserOnly,
		}),
		ginkgo.Entry("other dashboard areas block roleless users", decideTableInput{
			path:                "/dashboard/reports",
			identity:            &identityapi.Identity{ID: "u1"},
			expectedDestination: LoginPath,
			expectedReason:      ReasonRoleUnassigned,
		}),
		ginkgo.Entry("other dashboard areas admit any role", decideTableInput{
			path:          "/dashboard/settings",
			identity:      &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAdvertiser)},
			expectedAllow: true,
		}),
	)

	ginkgo.It("is idempotent for identical contexts", func() {
		ctx := Context{
			Path:     "/dashboard/affiliate",
			Identity: &identityapi.Identity{ID: "u1", Role: roleRef(identityapi.RoleAdvertiser)},
		}
		first := engine.Decide(ctx)
		for i := 0; i < 10; i++ {
			Expect(engine.Decide(ctx)).To(Equal(first))
		}
	})

	ginkgo.It("never inspects identity on public paths", func() {
		// A half-built identity must not be able to break a public request.
		verdict := engine.Decide(Context{Path: "/pricing", Identity: &identityapi.Identity{}})
		Expect(verdict.Allowed()).To(BeTrue())
	})
})
