// Package auth извлекает ключ арендатора (x-api-key) из запросов разных транспортов.
// Ключ не проверяется по реестру: любое непустое значение — отдельный арендатор.
package auth

import (
	"context"
	"net/http"

	"google.golang.org/grpc/metadata"
)

// HeaderName — имя заголовка с ключом. Совпадение точное, в нижнем регистре.
const HeaderName = "x-api-key"

// MsgMissingKey отдаётся клиенту со статусом 403.
const MsgMissingKey = "x-api-key header value missing, CAUTION: x-api-key should be lowercase!"

// FromHeaders returns the api key from an event header map.
// Only the exact lowercase spelling is recognised.
func FromHeaders(headers map[string]string) (string, bool) {
	key := headers[HeaderName]
	return key, key != ""
}

// FromRequest returns the api key carried by an HTTP request.
func FromRequest(r *http.Request) (string, bool) {
	key := r.Header.Get(HeaderName)
	return key, key != ""
}

// FromIncomingContext returns the api key from gRPC metadata.
func FromIncomingContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, key := range md.Get(HeaderName) {
		if key != "" {
			return key, true
		}
	}
	return "", false
}

// NewOutgoingContext attaches the api key to an outgoing gRPC call.
func NewOutgoingContext(ctx context.Context, apiKey string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, HeaderName, apiKey)
}
