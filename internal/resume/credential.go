package resume

import "fmt"

// CredentialStatus describes the configured oracle key without revealing it:
// "Not set", "Set but too short (invalid)" below 8 characters, otherwise the
// first and last four characters and the length.
func CredentialStatus(key string) string {
	if key == "" {
		return "Not set"
	}
	if len(key) < 8 {
		return "Set but too short (invalid)"
	}
	return fmt.Sprintf("%s...%s (%d chars)", key[:4], key[len(key)-4:], len(key))
}
