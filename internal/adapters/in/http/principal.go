package http

import (
	"context"
	"net/http"
	"strings"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"

	"github.com/labstack/echo/v4"
)

// Headers set by the upstream authenticator.
const (
	HeaderPrincipalID    = "X-Principal-ID"
	HeaderPrincipalRole  = "X-Principal-Role"
	HeaderPrincipalName  = "X-Principal-Name"
	HeaderPrincipalEmail = "X-Principal-Email"

	principalKey = "principal"
)

// MemberRegistrar records principals in the member directory.
type MemberRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterMemberCommand) error
}

// PrincipalMiddleware reads the authenticated principal from the request headers and
// stores it in the echo context. When a display name is present the principal is
// upserted into the member directory so order payloads can name it.
func PrincipalMiddleware(registrar MemberRegistrar) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header

			id, err := kernel.UUIDFromString(header.Get(HeaderPrincipalID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderPrincipalID)
			}
			role, err := member.ParseRole(header.Get(HeaderPrincipalRole))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderPrincipalRole)
			}
			principal, err := member.NewPrincipal(id, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			if name := strings.TrimSpace(header.Get(HeaderPrincipalName)); name != "" {
				m, memberErr := member.NewMember(id, name, header.Get(HeaderPrincipalEmail), role)
				if memberErr != nil {
					return echo.NewHTTPError(statusFor(memberErr), memberErr.Error())
				}
				cmd, cmdErr := commands.NewRegisterMemberCommand(m)
				if cmdErr != nil {
					return echo.NewHTTPError(statusFor(cmdErr), cmdErr.Error())
				}
				if err = registrar.Handle(ctx.Request().Context(), cmd); err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable").SetInternal(err)
				}
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

// requireRole returns the caller if it holds one of roles. With no roles any
// authenticated caller passes.
func requireRole(ctx echo.Context, roles ...member.Role) (member.Principal, error) {
	principal, ok := ctx.Get(principalKey).(member.Principal)
	if !ok {
		return member.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "principal is required")
	}
	if len(roles) == 0 {
		return principal, nil
	}
	for _, role := range roles {
		if principal.Is(role) {
			return principal, nil
		}
	}
	return member.Principal{}, echo.NewHTTPError(http.StatusForbidden,
		"operation is not available to role "+principal.Role.String())
}
