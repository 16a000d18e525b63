package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayload signs arbitrary data with HMAC-SHA256. Used to make QR entry
// passes tamper-evident without storing anything server-side.
func SignPayload(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func ValidSignature(data, secret, signature string) bool {
	expected := SignPayload(data, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
