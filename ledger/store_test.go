package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(profile string) *Snapshot {
	l := newTestLedger(1, 2)
	l.SetFlag("#Lemonade")
	l.SetPermanentFlag("#OceanVisited")
	l.AddPart(157, Position{X: 320, Y: 440})
	l.MarkMissionComplete(8)
	return l.Snapshot(profile)
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	profile := NewProfileID()

	_, err := store.Load(ctx, profile)
	require.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, store.Save(ctx, profile, sampleSnapshot(profile)))
	got, err := store.Load(ctx, profile)
	require.NoError(t, err)

	l := newTestLedger(1, 2)
	l.Restore(got)
	assert.Equal(t, profile, got.Profile)
	assert.True(t, l.HasFlag("#Lemonade"))
	assert.True(t, l.HasFlag("#OceanVisited"))
	assert.True(t, l.HasPart(157))
	assert.True(t, l.MissionComplete(8))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	exerciseStore(t, NewFileStore(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed into place")

	_, err = NewFileStore(dir).Load(context.Background(), "../escape")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "test:")
	exerciseStore(t, store)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "test:")
}

func TestDialRedisFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := DialRedis(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}

func TestGdataStore(t *testing.T) {
	app := fmt.Sprintf("roadtrip_test_%d", time.Now().UnixNano())
	store, err := OpenGdataStore(app)
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", app))
		}
	})
	exerciseStore(t, store)
}
