package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.uber.org/zap"
)

// JWTAuth validates the Bearer session token and injects the user's
// email and display name into the request context. Tokens are the HS256
// tokens minted at signup/login.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	authLogger := log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				http.Error(w, "Authorization header must be a Bearer token", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				authLogger.Warn("Invalid session token", zap.Error(err))
				http.Error(w, "Invalid or expired session token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			email, _ := claims["email"].(string)
			if email == "" {
				http.Error(w, "Token missing email claim", http.StatusUnauthorized)
				return
			}
			name, _ := claims["name"].(string)

			ctx := context.WithValue(r.Context(), UserEmailCtxKey, email)
			ctx = context.WithValue(ctx, UserNameCtxKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
