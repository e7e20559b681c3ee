package utils

import "testing"

func TestEnvOr(t *testing.T) {
	t.Setenv("PULSO_TEST_KEY", "value")
	if got := EnvOr("PULSO_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := EnvOr("PULSO_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("PULSO_TEST_EMPTY", "")
	if got := EnvOr("PULSO_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty var should use fallback, got %q", got)
	}
}
