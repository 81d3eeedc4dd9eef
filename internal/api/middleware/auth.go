package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/models"
	"github.com/rohits-web03/llamastore/internal/utils"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver turns a bearer token into the calling user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

// CurrentUser returns the user stored by RequireBearer.
func CurrentUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

// WithUser stores u in ctx the way RequireBearer does.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Auth guards handlers with bearer-token authentication. A missing token is
// 403, a token that does not resolve to a user is 401.
type Auth struct {
	users UserResolver
	log   *zap.SugaredLogger
}

func NewAuth(users UserResolver, log *zap.SugaredLogger) *Auth {
	return &Auth{users: users, log: log}
}

func (a *Auth) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utils.ErrorResponse(w, http.StatusForbidden, "Not authenticated")
			return
		}

		user, err := a.users.CurrentUser(r.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				a.log.Errorw("resolve bearer token", "err", err, "request_id", RequestIDFrom(r.Context()))
				utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.ErrorResponse(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireBearerFunc is RequireBearer for a HandlerFunc.
func (a *Auth) RequireBearerFunc(fn http.HandlerFunc) http.Handler {
	return a.RequireBearer(fn)
}
