package typedmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON encodes the map as a JSON object with members in entry order.
// Keys follow the encoding/json rules for map keys: K must be a string, an
// integer or implement encoding.TextMarshaler.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	m.lazyInit()

	var buf bytes.Buffer
	buf.WriteByte('{')
	it := m.entries.Iterator()
	for i := 0; it.Next(); i++ {
		member, err := json.Marshal(map[K]V{it.Key(): it.Value()})
		if err != nil {
			return nil, err
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		// strip the braces of the single-member object
		buf.Write(member[1 : len(member)-1])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of m with the members of a JSON object,
// in document order. Every member is checked against m's descriptors; on
// error m is left unchanged.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	m.lazyInit()

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var pending []Entry[K, V]
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}

		name, ok := t.(string)
		if !ok {
			return fmt.Errorf("typedmap: expected object key, got %v", t)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		e, err := decodeMember[K, V](name, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if err := m.checkKey(e.Key); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if err := m.checkValue(e.Value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		pending = append(pending, e)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	m.entries.Clear()
	for _, e := range pending {
		m.put(e.Key, e.Value)
	}
	return nil
}

// decodeMember decodes one object member through a single-entry map so keys
// get the same treatment encoding/json gives map keys.
func decodeMember[K comparable, V any](name string, raw json.RawMessage) (Entry[K, V], error) {
	key, err := json.Marshal(name)
	if err != nil {
		return Entry[K, V]{}, err
	}

	var obj bytes.Buffer
	obj.WriteByte('{')
	obj.Write(key)
	obj.WriteByte(':')
	obj.Write(raw)
	obj.WriteByte('}')

	var member map[K]V
	if err := json.Unmarshal(obj.Bytes(), &member); err != nil {
		return Entry[K, V]{}, err
	}

	for k, v := range member {
		return Entry[K, V]{Key: k, Value: v}, nil
	}
	return Entry[K, V]{}, errors.New("typedmap: empty member")
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := t.(json.Delim); !ok || d != want {
		return fmt.Errorf("typedmap: expected %q, got %v", want, t)
	}
	return nil
}
