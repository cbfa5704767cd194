package model

import (
	"bytes"
	"encoding/json"
)

// TermMap is an insertion-ordered mapping from term key to extracted value.
// Downstream tie-breaks and last-writer-wins overwrites depend on iteration
// order, so a plain map is not enough.
type TermMap struct {
	keys   []string
	values map[string]string
}

// NewTermMap creates an empty TermMap
func NewTermMap() *TermMap {
	return &TermMap{values: make(map[string]string)}
}

// Set stores a value under key. A new key is appended at the end;
// an existing key keeps its original position and gets the new value.
func (m *TermMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it is present
func (m *TermMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *TermMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries
func (m *TermMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-insertion order
func (m *TermMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in first-insertion order
func (m *TermMap) Each(fn func(key, value string)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON renders the map as a JSON object in insertion order
func (m *TermMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
