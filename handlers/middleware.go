package handlers

import (
	"context"
	"net/http"
	"strings"

	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyEmail  contextKey = "email"
	contextKeyRole   contextKey = "role"
)

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyUserID).(string)
	return id, ok
}

// RoleFromContext returns the authenticated role, if any
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(contextKeyRole).(string)
	return role, ok
}

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return auth
}

// parseJWT validates the signature and expiry and returns the claims
func parseJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorizedError("Invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.NewUnauthorizedError("Invalid or expired session")
	}
	return claims, nil
}

// JWTMiddleware authenticates the request and stores identity in the context
func JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			response.Error(w, r, apperror.NewUnauthorizedError("Authorization token required"))
			return
		}

		claims, err := parseJWT(tokenString)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		userID, _ := claims["user_id"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			response.Error(w, r, apperror.NewUnauthorizedError("Invalid or expired session"))
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		ctx = context.WithValue(ctx, contextKeyEmail, email)
		ctx = context.WithValue(ctx, contextKeyRole, role)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole rejects authenticated requests whose session role differs
func RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionRole, ok := RoleFromContext(r.Context())
		if !ok || sessionRole != role {
			response.Error(w, r, apperror.NewForbiddenError("This action requires the "+role+" role"))
			return
		}
		next(w, r)
	}
}

// CORSMiddleware adds permissive CORS headers, answers preflights and logs
// the incoming request
func CORSMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		logger.Debug("📥 Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
		)

		next(w, r)
	}
}
