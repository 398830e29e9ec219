package redis

import "fmt"

const (
	// KeyPrefixSession is the prefix for scs session payloads
	KeyPrefixSession = "astral:session:"
	// KeyRefreshQueue is the sorted set of session tokens scored by next refresh (unix ms)
	KeyRefreshQueue = "astral:refresh:due"
)

// SessionKey returns the Redis key for a session token
func SessionKey(token string) string {
	return KeyPrefixSession + token
}

// ExtractSessionToken extracts the session token from a Redis key
func ExtractSessionToken(key string) (string, error) {
	if len(key) <= len(KeyPrefixSession) {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	return key[len(KeyPrefixSession):], nil
}
