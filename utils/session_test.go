package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndLookup(t *testing.T) {
	store := NewSessionStore()

	token, err := store.Create(42)
	require.NoError(t, err)
	assert.Len(t, token, sessionTokenBytes*2) // hex encoded

	userID, ok := store.Lookup(token)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	_, ok = store.Lookup("no-such-token")
	assert.False(t, ok)
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	store := NewSessionStore()

	a, err := store.Create(1)
	require.NoError(t, err)
	b, err := store.Create(1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_LookupEvictsExpired(t *testing.T) {
	store := NewSessionStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	token, err := store.Create(7)
	require.NoError(t, err)

	// Still valid right at the boundary
	current = current.Add(SessionExpiry)
	_, ok := store.Lookup(token)
	assert.True(t, ok)

	// One more hour pushes it past expiry
	current = current.Add(time.Hour)
	_, ok = store.Lookup(token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	// Eviction is idempotent
	_, ok = store.Lookup(token)
	assert.False(t, ok)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()

	token, err := store.Create(3)
	require.NoError(t, err)

	store.Delete(token)
	_, ok := store.Lookup(token)
	assert.False(t, ok)

	// Deleting twice is harmless
	store.Delete(token)
}

func TestSessionStore_EvictExpired(t *testing.T) {
	store := NewSessionStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	expired1, err := store.Create(1)
	require.NoError(t, err)
	expired2, err := store.Create(2)
	require.NoError(t, err)

	current = current.Add(25 * time.Hour)
	fresh, err := store.Create(3)
	require.NoError(t, err)

	assert.Equal(t, 2, store.EvictExpired())
	assert.Equal(t, 1, store.Len())

	_, ok := store.Lookup(expired1)
	assert.False(t, ok)
	_, ok = store.Lookup(expired2)
	assert.False(t, ok)
	_, ok = store.Lookup(fresh)
	assert.True(t, ok)

	assert.Equal(t, 0, store.EvictExpired())
}
