package model

import (
	"context"

	"hotel/shared/constant"
)

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, constant.ContextKeyPrincipal, principal)
}

// PrincipalFrom returns the caller stored by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(constant.ContextKeyPrincipal).(Principal)

	return principal, ok
}
