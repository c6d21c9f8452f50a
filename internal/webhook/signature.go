package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const signaturePrefix = "sha256="

// ErrUnauthorized is returned for any delivery whose signature cannot be
// verified. The wrapped message carries the reason for logs only.
var ErrUnauthorized = errors.New("unauthorized")

// VerifySignature checks header (the X-Hub-Signature-256 value) against an
// HMAC-SHA256 of the raw request body.
func VerifySignature(body []byte, header string, secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: webhook secret not configured", ErrUnauthorized)
	}
	if header == "" {
		return fmt.Errorf("%w: missing signature header", ErrUnauthorized)
	}
	hexSig, ok := strings.CutPrefix(header, signaturePrefix)
	if !ok {
		return fmt.Errorf("%w: signature is not sha256", ErrUnauthorized)
	}
	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("%w: signature is not hex", ErrUnauthorized)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return fmt.Errorf("%w: signature mismatch", ErrUnauthorized)
	}
	return nil
}

// Sign returns the X-Hub-Signature-256 header value for body.
func Sign(body, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
