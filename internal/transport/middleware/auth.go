package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/briefdesk-backend/internal/auth"
	"github.com/heartmarshall/briefdesk-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Identity, error)
}

// Auth resolves the bearer token into the request principal. Requests
// without a token pass through anonymously; handlers that need a principal
// reject them. An invalid token is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			id, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), id.ID)
			ctx = ctxutil.WithEmail(ctx, id.Email)
			if id.Role != "" {
				ctx = ctxutil.WithRole(ctx, id.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
