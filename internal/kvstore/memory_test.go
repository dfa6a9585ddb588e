package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "state:2025-03-07", []byte(`{"checks":{}}`)))
	value, err := store.Get(ctx, "state:2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, `{"checks":{}}`, string(value))

	// overwrite
	require.NoError(t, store.Set(ctx, "state:2025-03-07", []byte(`{}`)))
	value, err = store.Get(ctx, "state:2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(value))

	require.NoError(t, store.Delete(ctx, "state:2025-03-07"))
	_, err = store.Get(ctx, "state:2025-03-07")
	require.ErrorIs(t, err, ErrKeyNotFound)

	// deleting a missing key is fine
	require.NoError(t, store.Delete(ctx, "state:2025-03-07"))
}

func TestMemoryStore_ListKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "state:2025-03-07", []byte("a")))
	require.NoError(t, store.Set(ctx, "state:2025-03-08", []byte("b")))
	require.NoError(t, store.Set(ctx, "summary:2025-03-07", []byte("c")))

	keys, err := store.ListKeys(ctx, "state:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"state:2025-03-07", "state:2025-03-08"}, keys)

	keys, err = store.ListKeys(ctx, "cache:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStore_ValueIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("original")
	require.NoError(t, store.Set(ctx, "key", original))
	original[0] = 'X'

	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "original", string(value))

	// mutating the returned slice must not leak into the store
	value[0] = 'Y'
	again, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}
