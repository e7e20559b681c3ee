package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func callRequireAuth(t *testing.T, header string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()
	var got *Identity
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, got
}

func TestRequireAuthRoundTrip(t *testing.T) {
	t.Setenv("PULSO_JWT_SECRET", "test-secret")
	tok, err := SignToken("usr_1", "tn_1", "ops@example.com", time.Minute)
	if err != nil {
		t.Fatalf("SignToken error: %v", err)
	}

	rec, id := callRequireAuth(t, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if id == nil || id.UserID != "usr_1" || id.TenantID != "tn_1" || id.Email != "ops@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	t.Setenv("PULSO_JWT_SECRET", "other-secret")
	foreign, err := SignToken("usr_1", "tn_1", "ops@example.com", time.Minute)
	if err != nil {
		t.Fatalf("SignToken error: %v", err)
	}

	t.Setenv("PULSO_JWT_SECRET", "test-secret")
	expired, err := SignToken("usr_1", "tn_1", "ops@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken error: %v", err)
	}

	for _, tc := range []struct {
		name, header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + foreign},
		{"expired", "Bearer " + expired},
	} {
		rec, id := callRequireAuth(t, tc.header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rec.Code)
		}
		if id != nil {
			t.Fatalf("%s: identity leaked to handler", tc.name)
		}
	}
}
