package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const identityContextKey contextKey = "identity"

// extractBearerToken returns the token from an "Authorization: Bearer <token>"
// header value, or "" when the header is missing or malformed.
func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Auth verifies the bearer token issued by the external identity provider and
// resolves its `sub` claim into the request context. Requests without a valid
// token pass through with no identity set; each handler owns its 401.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the verified caller identity resolved by Auth,
// or ("", false) when the request carried no valid token.
func Identity(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(identityContextKey).(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// WithIdentity returns a context carrying the given identity. Intended for
// tests that exercise handlers without the Auth middleware.
func WithIdentity(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, identityContextKey, sub)
}
