package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	loc, err := m.Put(ctx, "estec", "data/in/a.xlsx", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "estec/data/in/a.xlsx", loc)

	got, err := m.Get(ctx, "estec", "data/in/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'x'
	again, err := m.Get(ctx, "estec", "data/in/a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again, "Get must return a copy")

	assert.Equal(t, []string{"estec/data/in/a.xlsx"}, m.Keys())
}

func TestMemoryMissing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "estec", "nope.xlsx")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.PresignGet(ctx, "estec", "nope.xlsx", time.Hour)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPresign(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Put(ctx, "estec", "out/r.xlsx", []byte("r"))
	require.NoError(t, err)

	u, err := m.PresignGet(ctx, "estec", "out/r.xlsx", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "memory://estec/out/r.xlsx?X-Amz-Expires=3600", u)
}

func TestTrimBucket(t *testing.T) {
	assert.Equal(t, "data/a.xlsx", TrimBucket("estec", "estec/data/a.xlsx"))
	assert.Equal(t, "data/a.xlsx", TrimBucket("estec", "data/a.xlsx"))
	assert.Equal(t, "other/data/a.xlsx", TrimBucket("estec", " other/data/a.xlsx "))
}
