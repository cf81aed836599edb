package typedmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain[K comparable, V any](it *Iterator[K, V]) []Entry[K, V] {
	var entries []Entry[K, V]
	for it.Rewind(); it.Valid(); it.Next() {
		entries = append(entries, Entry[K, V]{Key: it.Key(), Value: it.Current()})
	}
	return entries
}

func TestIteratorRestartable(t *testing.T) {
	m := New[string, int]()
	for i, k := range []string{"k1", "k2", "k3"} {
		_, err := m.Put(k, i)
		require.NoError(t, err)
	}

	it := m.Iterator()
	first := drain(it)
	assert.False(t, it.Valid())

	want := []Entry[string, int]{{"k1", 0}, {"k2", 1}, {"k3", 2}}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("first pass mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(first, drain(it)); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}
}

func TestIteratorStates(t *testing.T) {
	m := New[string, int]()
	_, err := m.Put("a", 1)
	require.NoError(t, err)

	it := m.Iterator()
	assert.False(t, it.Valid(), "before start")
	assert.Equal(t, "", it.Key())
	assert.Equal(t, 0, it.Current())

	require.True(t, it.Next())
	assert.Equal(t, "a", it.Key())
	assert.Equal(t, 1, it.Current())

	assert.False(t, it.Next())
	assert.False(t, it.Next(), "stays past the end")
	assert.Equal(t, "", it.Key())

	it.Rewind()
	assert.True(t, it.Valid())
	assert.Equal(t, "a", it.Key())
}

func TestIteratorEmpty(t *testing.T) {
	var m Map[string, int]
	it := m.Iterator()
	it.Rewind()
	assert.False(t, it.Valid())
	assert.False(t, it.Next())
}

func TestIteratorsAreIndependent(t *testing.T) {
	m := New[string, int]()
	for i, k := range []string{"a", "b", "c"} {
		_, err := m.Put(k, i)
		require.NoError(t, err)
	}

	outer := m.Iterator()
	var pairs []string
	for outer.Rewind(); outer.Valid(); outer.Next() {
		inner := m.Iterator()
		for inner.Rewind(); inner.Valid(); inner.Next() {
			pairs = append(pairs, outer.Key()+inner.Key())
		}
	}

	assert.Equal(t, []string{"aa", "ab", "ac", "ba", "bb", "bc", "ca", "cb", "cc"}, pairs)
}

func TestIteratorSeesOverwrite(t *testing.T) {
	m := New[string, int]()
	_, err := m.Put("a", 1)
	require.NoError(t, err)

	it := m.Iterator()
	it.Rewind()
	_, err = m.Put("a", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Current())
}
