package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// The gateway echoes back an opaque reference we handed it at checkout
// time. Signing it lets the webhook trust the order id without a gateway
// round trip.

func SignReference(secret []byte, orderID string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(orderID))
	return orderID + "|" + hex.EncodeToString(h.Sum(nil))[:24]
}

func VerifyReference(secret []byte, ref string) (orderID string, ok bool) {
	parts := strings.Split(ref, "|")
	if len(parts) != 2 {
		return "", false
	}
	expected := SignReference(secret, parts[0])
	return parts[0], hmac.Equal([]byte(expected), []byte(ref))
}
