package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/jwt"
	"github.com/converse-dev/converse/internal/utils"
)

// Key to store the caller's user id in the request context
type key int

const userIdKey key = 0

// TokenFromRequest extracts the access token from the accessToken cookie or
// the Authorization: Bearer header. Cookie wins, matching the web client.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// NeedAuth rejects requests without a valid access token and stores the
// resolved user id in the request context.
func NeedAuth(jwtService jwt.JwtService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			uid, err := jwtService.DecodeToken(token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserId returns the authenticated caller id placed by NeedAuth.
func UserId(r *http.Request) (domain.UserId, bool) {
	uid, ok := r.Context().Value(userIdKey).(domain.UserId)
	return uid, ok
}

// WithUserId is a test helper mirroring what NeedAuth does.
func WithUserId(r *http.Request, uid domain.UserId) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIdKey, uid))
}
