package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Totarae/shortlinks/internal/auth"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestFromHeaders(t *testing.T) {
	key, ok := auth.FromHeaders(map[string]string{"x-api-key": "tenant-1"})
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", key)
}

func TestFromHeaders_Missing(t *testing.T) {
	tests := map[string]map[string]string{
		"nil":        nil,
		"empty":      {"x-api-key": ""},
		"upper case": {"X-API-KEY": "tenant-1"},
		"canonical":  {"X-Api-Key": "tenant-1"},
	}
	for name, headers := range tests {
		t.Run(name, func(t *testing.T) {
			key, ok := auth.FromHeaders(headers)
			assert.False(t, ok)
			assert.Empty(t, key)
		})
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/urls", nil)
	req.Header.Set("x-api-key", "tenant-1")

	key, ok := auth.FromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", key)

	_, ok = auth.FromRequest(httptest.NewRequest(http.MethodGet, "/urls", nil))
	assert.False(t, ok)
}

func TestFromIncomingContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-api-key", "tenant-1"))
	key, ok := auth.FromIncomingContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", key)

	_, ok = auth.FromIncomingContext(context.Background())
	assert.False(t, ok)

	empty := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-api-key", ""))
	_, ok = auth.FromIncomingContext(empty)
	assert.False(t, ok)
}

func TestNewOutgoingContext(t *testing.T) {
	ctx := auth.NewOutgoingContext(context.Background(), "tenant-1")

	md, ok := metadata.FromOutgoingContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, []string{"tenant-1"}, md.Get("x-api-key"))
}
