package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HMAC hashes remember tokens before they are stored, so a leaked
// database does not leak valid session tokens.
type HMAC struct {
	key []byte
}

// NewHMAC returns an HMAC using SHA-256 and the given secret key.
func NewHMAC(key string) HMAC {
	return HMAC{
		key: []byte(key),
	}
}

// Hash returns the base64 encoded HMAC of the input string. It is safe
// for concurrent use, the hash state is built fresh on every call.
func (h HMAC) Hash(input string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(input))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
