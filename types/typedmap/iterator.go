package typedmap

import (
	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// Iterator is a restartable forward cursor over a Map. Every Iterator keeps
// its own position, so several can walk the same map at once.
//
// A new Iterator starts before the first entry: call Rewind or Next to move
// onto it.
type Iterator[K comparable, V any] struct {
	it    *linkedhashmap.Iterator[K, V]
	valid bool
}

// Iterator returns a new cursor positioned before the first entry.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	m.lazyInit()
	return &Iterator[K, V]{it: m.entries.Iterator()}
}

// Rewind moves the cursor to the first entry.
func (i *Iterator[K, V]) Rewind() {
	i.it.Begin()
	i.valid = i.it.Next()
}

// Next advances the cursor and reports whether it references an entry.
// Once past the end it stays there until Rewind.
func (i *Iterator[K, V]) Next() bool {
	i.valid = i.it.Next()
	return i.valid
}

// Valid reports whether the cursor references an entry.
func (i *Iterator[K, V]) Valid() bool {
	return i.valid
}

// Key returns the key at the cursor, or the zero K if the cursor is not valid.
func (i *Iterator[K, V]) Key() K {
	if !i.valid {
		var zero K
		return zero
	}
	return i.it.Key()
}

// Current returns the value at the cursor, or the zero V if the cursor is not valid.
func (i *Iterator[K, V]) Current() V {
	if !i.valid {
		var zero V
		return zero
	}
	return i.it.Value()
}
