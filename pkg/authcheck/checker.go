// Package authcheck is the client-side consumer of the authorization engine.
// Where the edge middleware gates requests before any handler runs, a Checker
// answers the same question on demand, typically from a UI shell deciding
// whether to render a dashboard or navigate away.
package authcheck

import (
	"context"

	"github.com/leadmarket/leadmarket/pkg/authorization"
	"github.com/leadmarket/leadmarket/pkg/identity"
)

// Checker evaluates the shared rule engine against an identity obtained from
// a Resolver. Both call sites run the exact same rules, they differ only in
// how the identity is resolved.
type Checker struct {
	resolver identity.Resolver
	engine   authorization.Engine
}

// New constructs a Checker around the given resolver and engine.
func New(resolver identity.Resolver, engine authorization.Engine) *Checker {
	return &Checker{
		resolver: resolver,
		engine:   engine,
	}
}

// Check resolves the credential and evaluates the rules for path. Resolution
// failures yield the authentication-failed verdict alongside the error, so
// callers can both navigate and log. Verdicts are never cached: navigation
// to a new path means a fresh Check.
func (c *Checker) Check(ctx context.Context, path, credential string) (authorization.Verdict, error) {
	id, err := c.resolver.Resolve(ctx, credential)
	if err != nil {
		return authorization.AuthenticationFailed(), err
	}

	return c.engine.Decide(authorization.Context{Path: path, Identity: id}), nil
}
