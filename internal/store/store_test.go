package store

import (
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db, "teststore")
	require.NoError(t, err)
	return s
}

func TestNewStoreBadName(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "drop table", "sessions;", "t1"} {
		_, err := NewStore(db, name)
		assert.ErrorIs(t, err, ErrBadName, name)
	}
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	var nothing struct{}
	assert.ErrorIs(t, s.Get("some key", &nothing), ErrNotFound)
}

func TestStoreWriteAndReadStruct(t *testing.T) {
	s := setupTestStore(t)

	type Box struct {
		Name  string
		Array []int64
		Inner *Box
	}

	val := Box{
		Name:  "some name",
		Array: []int64{1, 2, 3},
		Inner: &Box{Name: "other name"},
	}
	require.NoError(t, s.Set("key", val))

	var got Box
	require.NoError(t, s.Get("key", &got))
	assert.Equal(t, val, got)
}

func TestStoreReadNil(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Set("key", 1337))
	assert.NoError(t, s.Get("key", nil))
}

func TestStoreUpdate(t *testing.T) {
	s := setupTestStore(t)
	r := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, s.Set("key", r.Int32()))
	val := r.Int32()
	require.NoError(t, s.Set("key", val))

	var got int32
	require.NoError(t, s.Get("key", &got))
	assert.Equal(t, val, got)
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	assert.NoError(t, s.Delete("missing"))

	require.NoError(t, s.Set("key", 1337))
	require.NoError(t, s.Delete("key"))

	var got int
	assert.ErrorIs(t, s.Get("key", &got), ErrNotFound)
}

func TestStoreCountAndKeys(t *testing.T) {
	s := setupTestStore(t)

	rows := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	for key, value := range rows {
		require.NoError(t, s.Set(key, value))
	}

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	delete(rows, "a")
	require.NoError(t, s.Delete("a"))

	count, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, len(rows), count)

	keys, err := s.GetAllKeys()
	require.NoError(t, err)
	assert.ElementsMatch(t, slices.Collect(maps.Keys(rows)), keys)
}

func TestNewKeyIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		key := NewKey()
		assert.Len(t, key, 36)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
