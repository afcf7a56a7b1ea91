package models

import (
	"bytes"
	"encoding/json"
)

// FieldMapping is an ordered set of named values used to populate one document
type FieldMapping struct {
	keys   []string
	values map[string]any
}

// NewFieldMapping creates an empty mapping
func NewFieldMapping() *FieldMapping {
	return &FieldMapping{values: make(map[string]any)}
}

// Set stores a value, keeping the position of an existing key
func (m *FieldMapping) Set(key string, value any) *FieldMapping {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key
func (m *FieldMapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// String returns the value under key when it is a string
func (m *FieldMapping) String(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

// Keys returns the keys in insertion order
func (m *FieldMapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of fields
func (m *FieldMapping) Len() int {
	return len(m.keys)
}

// Map returns an unordered copy suitable for template contexts
func (m *FieldMapping) Map() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the mapping as an object preserving key order
func (m *FieldMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
