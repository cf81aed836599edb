// Package typedmap provides Map, an insertion-ordered key/value container
// whose key and value types are fixed when it is created.
//
// The static type parameters K and V carry most of the contract. The runtime
// type descriptors narrow them further, which matters when K or V is an
// interface type: a Map[any, any] created with NewWithTypes can be restricted
// to string keys and *Model values, and every Put is checked accordingly.
//
// A Map is not safe for concurrent use. Mutating a map while iterating over it
// has undefined results.
package typedmap

import (
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"strings"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"

	"github.com/ollama/typedmap/logutil"
	"github.com/ollama/typedmap/types"
	"github.com/ollama/typedmap/types/errtypes"
)

// Map is an insertion-ordered map with runtime-checked key and value types.
// The zero value is an empty map whose descriptors are K and V.
type Map[K comparable, V any] struct {
	keyType   reflect.Type
	valueType reflect.Type
	entries   *linkedhashmap.Map[K, V]

	returnStored bool
}

// Entry is a stored key/value pair.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Option configures a Map at construction.
type Option func(*options)

type options struct {
	returnStored bool
}

// OptionReturnStored makes Put return the value it just stored instead of
// the value it replaced.
func OptionReturnStored() Option {
	return func(o *options) {
		o.returnStored = true
	}
}

// New returns an empty map whose key and value descriptors are K and V.
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	m := &Map[K, V]{}
	m.init(reflect.TypeFor[K](), reflect.TypeFor[V](), opts)
	return m
}

// NewWithTypes returns an empty map that only accepts keys assignable to
// keyType and values assignable to valueType.
func NewWithTypes[K comparable, V any](keyType, valueType reflect.Type, opts ...Option) (*Map[K, V], error) {
	if err := checkDescriptor("keyType", keyType, reflect.TypeFor[K](), true); err != nil {
		return nil, err
	}

	if err := checkDescriptor("valueType", valueType, reflect.TypeFor[V](), false); err != nil {
		return nil, err
	}

	m := &Map[K, V]{}
	m.init(keyType, valueType, opts)
	return m, nil
}

func (m *Map[K, V]) init(keyType, valueType reflect.Type, opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m.keyType = keyType
	m.valueType = valueType
	m.entries = linkedhashmap.New[K, V]()
	m.returnStored = o.returnStored
}

func (m *Map[K, V]) lazyInit() {
	if m.entries == nil {
		m.init(reflect.TypeFor[K](), reflect.TypeFor[V](), nil)
	}
}

// KeyType returns the key descriptor.
func (m *Map[K, V]) KeyType() reflect.Type {
	m.lazyInit()
	return m.keyType
}

// ValueType returns the value descriptor.
func (m *Map[K, V]) ValueType() reflect.Type {
	m.lazyInit()
	return m.valueType
}

func (m *Map[K, V]) checkKey(key K) error {
	return checkArg("key", key, m.keyType, true)
}

func (m *Map[K, V]) checkValue(value V) error {
	return checkArg("value", value, m.valueType, false)
}

// Size returns the number of distinct keys.
func (m *Map[K, V]) Size() int {
	if m.entries == nil {
		return 0
	}
	return m.entries.Size()
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

// ContainsKey reports whether an entry exists for key.
func (m *Map[K, V]) ContainsKey(key K) (bool, error) {
	m.lazyInit()
	if err := m.checkKey(key); err != nil {
		return false, err
	}

	_, ok := m.entries.Get(key)
	return ok, nil
}

// ContainsValue reports whether one or more keys map to value. Values are
// compared with reflect.DeepEqual.
func (m *Map[K, V]) ContainsValue(value V) (bool, error) {
	m.lazyInit()
	if err := m.checkValue(value); err != nil {
		return false, err
	}

	return m.entries.Any(func(_ K, v V) bool {
		return reflect.DeepEqual(v, value)
	}), nil
}

// Get returns the value stored for key, or an absent Null if there is none.
func (m *Map[K, V]) Get(key K) (types.Null[V], error) {
	m.lazyInit()
	if err := m.checkKey(key); err != nil {
		return types.Null[V]{}, err
	}

	if v, ok := m.entries.Get(key); ok {
		return types.NullWithValue(v), nil
	}
	return types.Null[V]{}, nil
}

// Put associates value with key. An existing key keeps its position; a new
// key is appended. Put returns the previous value, absent for a new key, or
// the stored value when the map was created with OptionReturnStored.
func (m *Map[K, V]) Put(key K, value V) (types.Null[V], error) {
	m.lazyInit()
	if err := m.checkKey(key); err != nil {
		return types.Null[V]{}, err
	}

	if err := m.checkValue(value); err != nil {
		return types.Null[V]{}, err
	}

	prev := m.put(key, value)
	if m.returnStored {
		return types.NullWithValue(value), nil
	}
	return prev, nil
}

// put stores a pair that has already passed the argument checks.
func (m *Map[K, V]) put(key K, value V) types.Null[V] {
	var prev types.Null[V]
	if v, ok := m.entries.Get(key); ok {
		prev.SetValue(v)
	}

	m.entries.Put(key, value)
	if logutil.TraceEnabled() {
		logutil.Trace("typedmap: put", "key", key, "replaced", prev.Valid(), "size", m.entries.Size())
	}
	return prev
}

// Remove deletes the entry for key and returns its value, or an absent Null
// if there was none.
func (m *Map[K, V]) Remove(key K) (types.Null[V], error) {
	m.lazyInit()
	if err := m.checkKey(key); err != nil {
		return types.Null[V]{}, err
	}

	v, ok := m.entries.Get(key)
	if !ok {
		return types.Null[V]{}, nil
	}

	m.entries.Remove(key)
	if logutil.TraceEnabled() {
		logutil.Trace("typedmap: remove", "key", key, "size", m.entries.Size())
	}
	return types.NullWithValue(v), nil
}

// PutAll copies every entry of other into m, in other's order. Entries are
// checked against m's descriptors before anything is stored, so either all
// of them are copied or none are.
func (m *Map[K, V]) PutAll(other *Map[K, V]) error {
	if other == nil {
		return &errtypes.NullArgumentError{Arg: "map"}
	}

	return m.PutSeq(other.All())
}

// PutSeq is like PutAll for an arbitrary sequence of pairs. Pairs with a nil
// key or value are skipped.
func (m *Map[K, V]) PutSeq(seq iter.Seq2[K, V]) error {
	if seq == nil {
		return &errtypes.NullArgumentError{Arg: "seq"}
	}

	m.lazyInit()

	var pending []Entry[K, V]
	for k, v := range seq {
		if isNil(k) || isNil(v) {
			continue
		}

		if err := m.checkKey(k); err != nil {
			return err
		}

		if err := m.checkValue(v); err != nil {
			return err
		}

		pending = append(pending, Entry[K, V]{Key: k, Value: v})
	}

	for _, e := range pending {
		m.put(e.Key, e.Value)
	}

	if logutil.TraceEnabled() {
		logutil.Trace("typedmap: putall", "count", len(pending), "size", m.entries.Size())
	}
	return nil
}

// Clear removes all entries. Existing iterators are not reset.
func (m *Map[K, V]) Clear() {
	if m.entries == nil {
		return
	}

	m.entries.Clear()
	logutil.Trace("typedmap: clear")
}

// Keys returns a snapshot of the keys in entry order.
func (m *Map[K, V]) Keys() []K {
	m.lazyInit()
	return m.entries.Keys()
}

// Values returns a snapshot of the values in entry order.
func (m *Map[K, V]) Values() []V {
	m.lazyInit()
	return m.entries.Values()
}

// Entries returns a snapshot of the pairs in entry order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	m.lazyInit()
	entries := make([]Entry[K, V], 0, m.entries.Size())
	m.entries.Each(func(k K, v V) {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	})
	return entries
}

// All returns a sequence over the entries in order. Each call starts a new,
// independent traversal.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	m.lazyInit()
	return func(yield func(K, V) bool) {
		it := m.entries.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// String formats the entries in order, like fmt does for a Go map.
func (m *Map[K, V]) String() string {
	m.lazyInit()

	var sb strings.Builder
	sb.WriteString("map[")
	first := true
	m.entries.Each(func(k K, v V) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%v:%v", k, v)
	})
	sb.WriteByte(']')
	return sb.String()
}

// LogValue implements [slog.LogValuer].
func (m *Map[K, V]) LogValue() slog.Value {
	m.lazyInit()
	return slog.GroupValue(
		slog.String("key_type", m.keyType.String()),
		slog.String("value_type", m.valueType.String()),
		slog.Int("size", m.entries.Size()),
	)
}
