// Package testutils содержит общие помощники для тестов хранилищ.
package testutils

import (
	"context"
	"sort"
	"testing"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/Totarae/shortlinks/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLinkStoreContract checks the behaviour every service.LinkStore must share:
// point reads, upserts, partition isolation and idempotent deletes.
func RunLinkStoreContract(t *testing.T, store service.LinkStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		link, err := store.Get(ctx, "tenant-missing", "nope")
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("put and get", func(t *testing.T) {
		want := &model.Link{APIKey: "tenant-a", ShortLinkID: "a1", URL: "https://example.com/a1"}
		require.NoError(t, store.Put(ctx, want))

		got, err := store.Get(ctx, "tenant-a", "a1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &model.Link{APIKey: "tenant-o", ShortLinkID: "o1", URL: "https://old.example.com"}))
		require.NoError(t, store.Put(ctx, &model.Link{APIKey: "tenant-o", ShortLinkID: "o1", URL: "https://new.example.com"}))

		got, err := store.Get(ctx, "tenant-o", "o1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "https://new.example.com", got.URL)

		all, err := store.QueryAll(ctx, "tenant-o")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("query all is partitioned", func(t *testing.T) {
		for _, l := range []*model.Link{
			{APIKey: "tenant-q", ShortLinkID: "q1", URL: "https://example.com/q1"},
			{APIKey: "tenant-q", ShortLinkID: "q2", URL: "https://example.com/q2"},
			{APIKey: "tenant-q:x", ShortLinkID: "q3", URL: "https://example.com/q3"},
			{APIKey: "tenant-r", ShortLinkID: "q1", URL: "https://example.com/r1"},
		} {
			require.NoError(t, store.Put(ctx, l))
		}

		links, err := store.QueryAll(ctx, "tenant-q")
		require.NoError(t, err)
		require.Len(t, links, 2)

		ids := make([]string, 0, len(links))
		for _, l := range links {
			assert.Equal(t, "tenant-q", l.APIKey)
			ids = append(ids, l.ShortLinkID)
		}
		sort.Strings(ids)
		assert.Equal(t, []string{"q1", "q2"}, ids)

		same, err := store.Get(ctx, "tenant-r", "q1")
		require.NoError(t, err)
		require.NotNil(t, same)
		assert.Equal(t, "https://example.com/r1", same.URL)
	})

	t.Run("query all empty", func(t *testing.T) {
		links, err := store.QueryAll(ctx, "tenant-empty")
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &model.Link{APIKey: "tenant-d", ShortLinkID: "d1", URL: "https://example.com/d1"}))
		require.NoError(t, store.Put(ctx, &model.Link{APIKey: "tenant-d", ShortLinkID: "d2", URL: "https://example.com/d2"}))

		require.NoError(t, store.Delete(ctx, "tenant-d", "d1"))
		require.NoError(t, store.Delete(ctx, "tenant-d", "d1"))
		require.NoError(t, store.Delete(ctx, "tenant-d", "never-existed"))

		gone, err := store.Get(ctx, "tenant-d", "d1")
		require.NoError(t, err)
		assert.Nil(t, gone)

		rest, err := store.QueryAll(ctx, "tenant-d")
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "d2", rest[0].ShortLinkID)
	})
}
