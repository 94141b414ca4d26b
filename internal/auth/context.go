package auth

import "github.com/gofiber/fiber/v2"

const principalKey = "auth_principal"

// SetPrincipal places the principal into the request-scoped context.
// The context is set at most once per request: a second attempt is
// ignored and returns false, so a forged second token cannot replace an
// already-authenticated identity.
func SetPrincipal(c *fiber.Ctx, principal *Principal) bool {
	if c.Locals(principalKey) != nil {
		return false
	}
	c.Locals(principalKey, principal)
	return true
}

// CurrentPrincipal returns the authenticated identity for this request,
// if one was set.
func CurrentPrincipal(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ClearPrincipal removes the principal at request completion. Fiber pools
// and reuses contexts, so this must run on every exit path to prevent an
// identity bleeding into the next request handled by the same worker.
func ClearPrincipal(c *fiber.Ctx) {
	c.Locals(principalKey, nil)
}
