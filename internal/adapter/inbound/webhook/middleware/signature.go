package middleware

import (
	"crypto/ed25519"
	"encoding/hex"
	"net/http"

	"github.com/jonny/ranobe-bot/internal/metrics"
	"github.com/jonny/ranobe-bot/pkg/apierror"
)

const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// Verify reports whether signature is a valid Ed25519 signature by key over
// timestamp followed by body. Any malformed input yields false.
func Verify(body []byte, signature, timestamp string, key ed25519.PublicKey) bool {
	if signature == "" || timestamp == "" || len(key) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(key, msg, sig)
}

// SignatureGate rejects every request whose body is not signed by key.
// It must run after BodyReader. Rejections share one response so callers
// learn nothing about why verification failed.
func SignatureGate(key ed25519.PublicKey, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, ok := RawBody(r)
			if !ok || !Verify(body, r.Header.Get(HeaderSignature), r.Header.Get(HeaderTimestamp), key) {
				m.SignatureFailures.Inc()
				apierror.Write(w, apierror.Unauthorized("invalid request signature"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
