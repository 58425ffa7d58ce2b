package security

import "crypto/sha256"

// HashRefreshToken digests a refresh token for storage. Sessions are looked
// up by this hash so the raw token value never sits in the database.
func HashRefreshToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
