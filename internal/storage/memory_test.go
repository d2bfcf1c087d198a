package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/Totarae/shortlinks/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_Contract(t *testing.T) {
	store, err := NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)

	testutils.RunLinkStoreContract(t, store)
}

func TestMemoryStore_FileContract(t *testing.T) {
	store, err := NewMemoryStore(filepath.Join(t.TempDir(), "links.jsonl"), zap.NewNop())
	require.NoError(t, err)

	testutils.RunLinkStoreContract(t, store)
}

// Журнал переживает перезапуск: удалённые ссылки не воскресают.
func TestMemoryStore_ReplayJournal(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "links.jsonl")

	store, err := NewMemoryStore(file, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, &model.Link{APIKey: "k", ShortLinkID: "a", URL: "https://a.example.com"}))
	require.NoError(t, store.Put(ctx, &model.Link{APIKey: "k", ShortLinkID: "b", URL: "https://b.example.com"}))
	require.NoError(t, store.Put(ctx, &model.Link{APIKey: "k", ShortLinkID: "a", URL: "https://a2.example.com"}))
	require.NoError(t, store.Delete(ctx, "k", "b"))

	reopened, err := NewMemoryStore(file, zap.NewNop())
	require.NoError(t, err)

	a, err := reopened.Get(ctx, "k", "a")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "https://a2.example.com", a.URL)

	b, err := reopened.Get(ctx, "k", "b")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestMemoryStore_DeleteMissingWritesNothing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "links.jsonl")
	store, err := NewMemoryStore(file, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "k", "missing"))

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStore_CorruptJournal(t *testing.T) {
	file := filepath.Join(t.TempDir(), "links.jsonl")
	require.NoError(t, os.WriteFile(file, []byte(`{"op":"put","apiKey":"k"`+"\n"), 0644))

	_, err := NewMemoryStore(file, zap.NewNop())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode journal"))
}

func TestMemoryStore_UnknownOp(t *testing.T) {
	file := filepath.Join(t.TempDir(), "links.jsonl")
	require.NoError(t, os.WriteFile(file, []byte(`{"op":"patch","apiKey":"k","shortLinkId":"a","url":"x"}`+"\n"), 0644))

	_, err := NewMemoryStore(file, zap.NewNop())
	assert.ErrorContains(t, err, `unknown op "patch"`)
}

// Изменение возвращённой ссылки не должно менять хранилище.
func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, &model.Link{APIKey: "k", ShortLinkID: "a", URL: "https://a.example.com"}))

	got, err := store.Get(ctx, "k", "a")
	require.NoError(t, err)
	got.URL = "https://mutated.example.com"

	again, err := store.Get(ctx, "k", "a")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.com", again.URL)
}
