package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "theme", "dark"))
	require.NoError(t, m.Set(ctx, "theme", "light"))
	v, err := m.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, m.Set(ctx, "username", "Ann"))
	assert.ElementsMatch(t, []string{"theme", "username"}, m.Keys())

	require.NoError(t, m.Delete(ctx, "theme"))
	require.NoError(t, m.Delete(ctx, "theme"))
	_, err = m.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Clear(ctx))
	assert.Empty(t, m.Keys())
}

func TestMemoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	assert.ErrorIs(t, m.Set(ctx, "k", "v"), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
