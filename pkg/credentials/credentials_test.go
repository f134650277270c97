package credentials

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/apputil/pkg/events"
	"github.com/getmockd/apputil/pkg/storage"
)

func newMemoryStore(t *testing.T) storage.Store {
	t.Helper()
	s := storage.NewMemory()
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	var published []string
	bus.Subscribe(events.Wildcard, func(_ context.Context, e events.Event) {
		published = append(published, e.Name)
	})

	m := NewManager(newMemoryStore(t), bus, nil)

	_, err := m.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	want := Credentials{Key: "k-123", Secret: "s-456"}
	require.NoError(t, m.Set(ctx, want))
	assert.Equal(t, []string{EventUpdated}, published)

	got, err := m.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManager_StoredFormat(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	m := NewManager(store, nil, nil)

	require.NoError(t, m.Set(ctx, Credentials{Key: "k", Secret: "s"}))

	v, ok, err := store.GetItem(ctx, ItemName)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"key":"k","secret":"s"}`, v)
}

func TestManager_PublishesAfterStore(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	bus := events.NewBus()
	m := NewManager(store, bus, nil)

	var seen Credentials
	bus.Subscribe(EventUpdated, func(ctx context.Context, _ events.Event) {
		c, err := m.Get(ctx)
		require.NoError(t, err)
		seen = c
	})

	require.NoError(t, m.Set(ctx, Credentials{Key: "new", Secret: "x"}))
	assert.Equal(t, "new", seen.Key)
}

func TestManager_DecodeError(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	require.NoError(t, store.SetItem(ctx, ItemName, "not json"))

	_, err := NewManager(store, nil, nil).Get(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "decode credentials")
}

func TestManager_StoreErrors(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFile(filepath.Join(t.TempDir(), "data.json"), nil)
	m := NewManager(store, nil, nil)

	_, err := m.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotInitialized)
	assert.ErrorIs(t, m.Set(ctx, Credentials{}), storage.ErrNotInitialized)
}

func TestManager_FileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	store := storage.NewFile(path, nil)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, NewManager(store, nil, nil).Set(ctx, Credentials{Key: "k", Secret: "s"}))

	reopened := storage.NewFile(path, nil)
	require.NoError(t, reopened.Init(ctx))
	got, err := NewManager(reopened, nil, nil).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Credentials{Key: "k", Secret: "s"}, got)
}

func TestCredentials_Redacted(t *testing.T) {
	tests := []struct {
		name string
		in   Credentials
		want Credentials
	}{
		{"long key", Credentials{Key: "abcdef123456", Secret: "s"}, Credentials{Key: "********3456", Secret: "********"}},
		{"short key", Credentials{Key: "abc"}, Credentials{Key: "***"}},
		{"empty", Credentials{}, Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Redacted())
		})
	}
}
