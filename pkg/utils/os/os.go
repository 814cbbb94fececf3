package os

import "os"

// GetEnvOr reads the environment variable name, falling back to
// fallback when it is unset or empty.
func GetEnvOr(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
