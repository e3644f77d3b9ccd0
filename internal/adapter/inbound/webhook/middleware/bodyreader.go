package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/jonny/ranobe-bot/pkg/apierror"
)

// MaxBodyBytes bounds the interaction payload read into memory.
const MaxBodyBytes = 1 << 20

// rawBodyKey is used to store the raw request body in context.
type rawBodyKey struct{}

// BodyReader reads and buffers the request body so the exact bytes can be
// verified by SignatureGate and then decoded by the handler. The raw bytes
// are stored in the request context under rawBodyKey{}.
func BodyReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		if err != nil {
			apierror.Write(w, apierror.BadRequest("failed to read request body"))
			return
		}
		r.Body.Close()

		r.Body = io.NopCloser(bytes.NewReader(body))

		ctx := context.WithValue(r.Context(), rawBodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RawBody returns the bytes buffered by BodyReader.
func RawBody(r *http.Request) ([]byte, bool) {
	body, ok := r.Context().Value(rawBodyKey{}).([]byte)
	return body, ok
}
