package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Harmonic/harmonic/internal/domain"
	"github.com/Harmonic/harmonic/pkg/logger"
)

// Claims are the fields read from a Supabase access token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTAuth struct {
	secret []byte
	logger logger.Logger
}

// NewJWTAuth verifies HS256 access tokens signed with the project JWT secret
func NewJWTAuth(secret string, logger logger.Logger) *JWTAuth {
	return &JWTAuth{
		secret: []byte(secret),
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller in the request context
func (a *JWTAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(a.secret) == 0 {
			a.logger.Error("JWT secret is not configured, rejecting authenticated route")
			writeError(w, "Authentication is not configured", http.StatusInternalServerError)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			writeError(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := a.parse(strings.TrimSpace(parts[1]))
		if err != nil {
			a.logger.WithField("error", err.Error()).Debug("Rejected access token")
			writeError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := domain.WithCaller(r.Context(), domain.Caller{
			UserID: claims.Subject,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *JWTAuth) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
