package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/auth"
	"github.com/Varun5711/taskboard/internal/logger"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		log:        logger.New("auth-middleware"),
	}
}

// RequireAuth verifies the bearer token and puts the authenticated
// identity into the request context. Any verification failure is a
// uniform 401; the reason is never exposed to the caller.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperror.Write(w, apperror.NewAuthentication("Missing or invalid authorization header"))
			return
		}

		token := authHeader[len("Bearer "):]

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			apperror.Write(w, apperror.NewAuthentication("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}
