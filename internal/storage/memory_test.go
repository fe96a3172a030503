package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlotStoreRoundTrip(t *testing.T) {
	s := NewMemorySlotStore()
	ctx := context.Background()

	_, found, err := s.Get(ctx, SlotTravelRecords)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, SlotTravelRecords, `[]`))
	v, found, err := s.Get(ctx, SlotTravelRecords)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[]`, v)

	// last writer wins
	require.NoError(t, s.Set(ctx, SlotTravelRecords, `[{"id":"r1"}]`))
	v, _, err = s.Get(ctx, SlotTravelRecords)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1"}]`, v)

	require.NoError(t, s.Delete(ctx, SlotTravelRecords))
	_, found, err = s.Get(ctx, SlotTravelRecords)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySlotStoreKeysAreIndependent(t *testing.T) {
	s := NewMemorySlotStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, SlotIsLoggedIn, "true"))
	require.NoError(t, s.Set(ctx, SlotUser, `{"id":"u1"}`))
	require.NoError(t, s.Delete(ctx, SlotIsLoggedIn))

	v, found, err := s.Get(ctx, SlotUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"id":"u1"}`, v)
}
