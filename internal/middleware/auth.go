package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pulsohq/pulso/internal/utils"
)

const tokenIssuer = "pulso"

type identityKey struct{}

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	UserID   string
	TenantID string
	Email    string
}

type sessionClaims struct {
	TenantID string `json:"tenant"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	return []byte(utils.EnvOr("PULSO_JWT_SECRET", "pulso-insecure-local-key"))
}

// SignToken mints an HS256 session token for the given identity.
func SignToken(userID, tenantID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TenantID: tenantID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

func parseToken(raw string) (*Identity, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return signingKey(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, errors.New("token lacks identity claims")
	}
	return &Identity{UserID: claims.Subject, TenantID: claims.TenantID, Email: claims.Email}, nil
}

// RequireAuth rejects requests without a valid bearer token and puts the
// caller identity on the context for downstream handlers.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			unauthorized(w)
			return
		}
		id, err := parseToken(raw)
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}

// IdentityFromContext returns the caller identity set by RequireAuth.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok
}
