package middleware

import (
	"context"
	"net/http"

	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/rs/zerolog/log"
)

type contextKey string

// userKey is the context key under which the authenticated user travels
// through handler signatures.
const userKey contextKey = "currentUser"

// AuthMiddleware authenticates requests from the JWT session cookie and
// threads the loaded user through the request context as an explicit
// identity value.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      storage.UserStore
}

// NewAuthMiddleware creates an AuthMiddleware backed by the JWT service and
// the user store.
func NewAuthMiddleware(jwtService *auth.JWTService, users storage.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// resolveUser returns the user identified by the session cookie, or nil if
// the cookie is missing, invalid, expired, or the account no longer exists.
func (a *AuthMiddleware) resolveUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := a.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("Session token rejected")
		return nil
	}

	user, err := a.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		return nil
	}

	return user
}

// AttachUser is the optional-auth middleware: a valid session attaches the
// user to the context, anything else leaves the request anonymous. It
// never fails the request.
func (a *AuthMiddleware) AttachUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := a.resolveUser(r); user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := a.resolveUser(r)
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}
