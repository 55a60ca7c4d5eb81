package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2dp-bridge/internal/a2dp"
)

var testAddr = a2dp.Address{0xAA, 0x00, 0x11, 0x22, 0x33, 0x44}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pref, err := s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefUnknown, pref)

	require.NoError(t, s.Set(ctx, testAddr, a2dp.OptionalCodecsPrefDisabled))
	pref, err = s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefDisabled, pref)

	require.NoError(t, s.Set(ctx, testAddr, a2dp.OptionalCodecsPrefEnabled))
	pref, err = s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefEnabled, pref)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), testAddr)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), testAddr, a2dp.OptionalCodecsPrefEnabled), ErrClosed)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)

	pref, err := s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefUnknown, pref)

	require.NoError(t, s.Set(ctx, testAddr, a2dp.OptionalCodecsPrefDisabled))
	require.NoError(t, s.Set(ctx, testAddr, a2dp.OptionalCodecsPrefEnabled))
	pref, err = s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefEnabled, pref)
	require.NoError(t, s.Close())

	// Settings survive a reopen.
	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	pref, err = s.Get(ctx, testAddr)
	require.NoError(t, err)
	assert.Equal(t, a2dp.OptionalCodecsPrefEnabled, pref)
}

func TestSQLiteStoreClosed(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Get(context.Background(), testAddr)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), testAddr, a2dp.OptionalCodecsPrefDisabled), ErrClosed)
}
