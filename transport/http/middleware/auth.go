package middleware

import (
	"errors"
	"net/http"
	"slices"

	"hotel/infras/jwt"
	"hotel/infras/otel"
	authService "hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/transport/http/response"
)

// Auth guards routes with a bearer session and, optionally, a role.
type Auth interface {
	Authenticate(next http.Handler) http.Handler
	RequireRole(roles ...string) func(http.Handler) http.Handler
}

type authImpl struct {
	authService authService.Auth
	otel        otel.Otel
}

func NewAuth(authService authService.Auth, otel otel.Otel) Auth {
	return &authImpl{
		authService: authService,
		otel:        otel,
	}
}

// Authenticate resolves the Authorization header into a Principal stored on the request context.
func (m *authImpl) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelMiddlewareScopeName, constant.OtelMiddlewareScopeName+".Authenticate")

		token, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))
		if errors.Is(err, jwt.ErrInvalidHeader) {
			err = failure.Unauthorized(authService.MessageInvalidToken)

			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		principal, err := m.authService.VerifySession(ctx, token)
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		scope.SetAttributes(map[string]any{
			"user.id":   principal.UserID,
			"user.role": principal.Role,
		})
		scope.End()

		next.ServeHTTP(w, r.WithContext(gModel.WithPrincipal(r.Context(), principal)))
	})
}

// RequireRole rejects callers whose role is not listed. It must run after Authenticate.
func (m *authImpl) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := gModel.PrincipalFrom(r.Context())
			if !ok {
				response.WithError(w, failure.Unauthorized(authService.MessageTokenRequired))

				return
			}

			if !slices.Contains(roles, principal.Role) {
				_, scope := m.otel.NewScope(r.Context(), constant.OtelMiddlewareScopeName, constant.OtelMiddlewareScopeName+".RequireRole")
				scope.SetAttributes(map[string]any{
					"user.role":     principal.Role,
					"allowed_roles": roles,
				})
				scope.TraceError(failure.ForbiddenError)
				scope.End()

				response.WithError(w, failure.ForbiddenError)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
