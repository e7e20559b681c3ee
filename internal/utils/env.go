// Package utils holds small helpers shared across the server.
package utils

import "os"

// EnvOr reads an environment variable, substituting fallback when it is unset
// or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
