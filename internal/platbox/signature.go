package platbox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sign computes the lower-hex HMAC-SHA256 of data under secretKey.
// The processor signs the exact bytes it sends; responses are signed over
// their canonical JSON encoding.
func Sign(data []byte, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature over data and compares it with the
// candidate case-insensitively. hmac.Equal keeps the comparison
// constant-time.
func Verify(data []byte, secretKey, candidate string) bool {
	expected := Sign(data, secretKey)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(candidate)))
}
