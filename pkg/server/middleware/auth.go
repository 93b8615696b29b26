package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// ActorContextKey carries the authenticated admin username.
const ActorContextKey contextKey = "actor"

// TokenAuthenticator issues and validates admin JWTs signed with the
// configured secret.
type TokenAuthenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenAuthenticator(secret string, ttl time.Duration) *TokenAuthenticator {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenAuthenticator{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for the given admin username.
func (a *TokenAuthenticator) Issue(username string) (string, error) {
	if len(a.secret) == 0 {
		return "", fmt.Errorf("admin token secret is not configured")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify parses a token string and returns the subject.
func (a *TokenAuthenticator) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid Bearer token and stores the
// authenticated username in the request context.
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization header"))
			return
		}

		username, err := a.Verify(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), ActorContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Actor returns the authenticated admin username from the context, or empty.
func Actor(ctx context.Context) string {
	if actor, ok := ctx.Value(ActorContextKey).(string); ok {
		return actor
	}
	return ""
}
