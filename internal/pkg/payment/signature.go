package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyRazorpaySignature recomputes the checkout confirmation signature,
// HMAC-SHA256 over "order_id|payment_id" keyed with the gateway secret, and
// compares it in constant time against the client-submitted hex signature.
func VerifyRazorpaySignature(orderID, paymentID, signatureHex, secret string) bool {
	orderID = strings.TrimSpace(orderID)
	paymentID = strings.TrimSpace(paymentID)
	sig := strings.TrimSpace(signatureHex)
	if orderID == "" || paymentID == "" || sig == "" || strings.TrimSpace(secret) == "" {
		return false
	}

	supplied, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), supplied)
}
