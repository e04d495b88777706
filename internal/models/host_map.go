package models

import (
	"bytes"
	"iter"

	json "github.com/goccy/go-json"
)

// HostMap is a hostname-keyed mapping that remembers the order in which
// hostnames first appeared in the source document.
type HostMap[T any] struct {
	keys  []string
	items map[string]T
}

func NewHostMap[T any](capacity int) HostMap[T] {
	return HostMap[T]{
		keys:  make([]string, 0, capacity),
		items: make(map[string]T, capacity),
	}
}

// Set stores v under host. A host that is already present keeps its
// original position.
func (m *HostMap[T]) Set(host string, v T) {
	if m.items == nil {
		m.items = make(map[string]T)
	}
	if _, ok := m.items[host]; !ok {
		m.keys = append(m.keys, host)
	}
	m.items[host] = v
}

func (m *HostMap[T]) Get(host string) (T, bool) {
	v, ok := m.items[host]
	return v, ok
}

func (m *HostMap[T]) Len() int {
	return len(m.keys)
}

func (m *HostMap[T]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates hostnames and values in document order.
func (m *HostMap[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes entries in document order. Values reached through a
// pointer use it; encode a *StatsExport rather than a StatsExport.
func (m *HostMap[T]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
