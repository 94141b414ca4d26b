package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/social-api/internal/events"
	"github.com/spec-kit/social-api/internal/observability"
)

// PrincipalResolver resolves a token subject into a principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, username string) (*Principal, error)
}

// RequestAuthenticator authenticates each inbound request: extract bearer
// token, validate, resolve the principal, populate the request context.
// It never terminates the request itself; an empty context is the signal
// downstream authorization acts on.
type RequestAuthenticator struct {
	codec      *TokenCodec
	resolver   PrincipalResolver
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewRequestAuthenticator constructs the middleware. Dispatcher and
// metrics may be nil.
func NewRequestAuthenticator(codec *TokenCodec, resolver PrincipalResolver, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *RequestAuthenticator {
	return &RequestAuthenticator{
		codec:      codec,
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// Handle runs the authentication pass and always continues the chain.
// The context is cleared on every exit path, including downstream panics,
// since fiber reuses pooled contexts across requests.
func (a *RequestAuthenticator) Handle(c *fiber.Ctx) error {
	defer ClearPrincipal(c)

	a.authenticate(c)
	return c.Next()
}

func (a *RequestAuthenticator) authenticate(c *fiber.Ctx) {
	token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		// No token is not an error; the request proceeds unauthenticated.
		return
	}
	if _, set := CurrentPrincipal(c); set {
		return
	}

	if !a.codec.Validate(token) {
		a.reject(c, "", "invalid_token")
		return
	}

	subject, err := a.codec.Subject(token)
	if err != nil {
		a.reject(c, "", "malformed_token")
		return
	}

	principal, err := a.resolver.Resolve(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			// Token issued for an identity that no longer exists.
			a.reject(c, subject, "identity_not_found")
			return
		}
		a.logger.Warn("identity resolution failed", zap.Error(err))
		a.reject(c, subject, "resolve_failed")
		return
	}

	if !principal.IsEnabled() || !principal.IsNonLocked() {
		a.reject(c, subject, "account_disabled")
		return
	}

	SetPrincipal(c, principal)
	a.metrics.RecordAuthOutcome("authenticated")
}

func (a *RequestAuthenticator) reject(c *fiber.Ctx, subject, reason string) {
	a.metrics.RecordAuthOutcome(reason)

	fields := []zap.Field{zap.String("reason", reason)}
	if subject != "" {
		fields = append(fields, zap.String("subject", subject))
	}
	a.logger.Debug("request unauthenticated", fields...)

	if a.dispatcher != nil {
		_ = a.dispatcher.Publish(c.UserContext(), events.New(events.EventAuthRejected, subject, events.AuthRejectedPayload{Reason: reason}))
	}
}

// BearerToken extracts the token from an Authorization header value. The
// "Bearer " prefix is matched case-sensitively with exactly one space;
// any other form means no token is present.
func BearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
