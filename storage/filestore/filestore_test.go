package filestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNew_RequiresExistingDirectory(t *testing.T) {
	_, err := New("/nonexistent/path/for/filestore")
	assert.Error(t, err)
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "model-1/training_data.json", []byte(`{"ok":true}`)))

	data, err := store.Get(ctx, "model-1/training_data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestPut_OverwritesExistingKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", []byte("first")))
	require.NoError(t, store.Put(ctx, "key", []byte("second")))

	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestGet_MissingKeyFails(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestList_FiltersByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "model-1/training_data.json", []byte("a")))
	require.NoError(t, store.Put(ctx, "model-2/training_data.json", []byte("b")))
	require.NoError(t, store.Put(ctx, "other/file", []byte("c")))

	keys, err := store.List(ctx, "model-")
	require.NoError(t, err)
	assert.Equal(t, []string{"model-1/training_data.json", "model-2/training_data.json"}, keys)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestList_NoMatchesReturnsEmptySlice(t *testing.T) {
	store := newTestStore(t)

	keys, err := store.List(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.NotNil(t, keys)
}

func TestDelete_IsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", []byte("data")))
	require.NoError(t, store.Delete(ctx, "key"))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.Error(t, err)
}

func TestResolve_RejectsEscapingKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []string{"../outside", "/absolute", "."}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			err := store.Put(ctx, key, []byte("data"))
			assert.Error(t, err)
		})
	}
}

func TestPut_RespectsCancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "key", []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)
}
