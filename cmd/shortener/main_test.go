package main

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Totarae/shortlinks/internal/config"
	"github.com/Totarae/shortlinks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{StorageBackend: config.BackendMemory}},
		{"file", config.Config{StorageBackend: config.BackendFile, FileStoragePath: filepath.Join(dir, "links.json")}},
		{"badger on disk", config.Config{StorageBackend: config.BackendBadger, BadgerPath: filepath.Join(dir, "badger"), TableName: "links"}},
		{"badger in memory", config.Config{StorageBackend: config.BackendBadger, TableName: "links"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, closeStore, err := openStore(ctx, &tt.cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeStore()

			link := &model.Link{APIKey: "tenant", ShortLinkID: "abc", URL: "https://example.com"}
			require.NoError(t, store.Put(ctx, link))

			got, err := store.Get(ctx, "tenant", "abc")
			require.NoError(t, err)
			assert.Equal(t, link, got)
		})
	}
}

func TestOpenStore_Unknown(t *testing.T) {
	_, _, err := openStore(context.Background(), &config.Config{StorageBackend: "cassandra"}, zap.NewNop())
	assert.ErrorContains(t, err, "cassandra")
}

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestRun_ServesAndStops(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:  freeAddr(t),
		GRPCAddress:    freeAddr(t),
		StorageBackend: config.BackendMemory,
		TableName:      "links",
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.NewNop()) }()

	require.Eventually(t, func() bool {
		req, err := http.NewRequest(http.MethodGet, "http://"+cfg.ServerAddress+"/urls", nil)
		if err != nil {
			return false
		}
		req.Header.Set("x-api-key", "tenant")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadBackend(t *testing.T) {
	cfg := &config.Config{ServerAddress: freeAddr(t), StorageBackend: "cassandra"}
	err := run(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
