package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	data, err := s.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	data, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	require.NoError(t, s.Delete(ctx, "k"))
	data, _ = s.Get(ctx, "k")
	assert.Nil(t, data)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	now = now.Add(2 * time.Minute)

	data, err := s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestSaveJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveJSON(ctx, s, "k", map[string]int{"a": 1}, 0))
	data, _ := s.Get(ctx, "k")
	assert.JSONEq(t, `{"a":1}`, string(data))

	assert.Error(t, SaveJSON(ctx, s, "bad", make(chan int), 0))
}
