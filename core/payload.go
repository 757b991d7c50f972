package core

import (
	"encoding/json"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Extras carries caller-supplied platform fields that the client does not
// model explicitly (temperature, chunk_size, order_by, ...). The platform is
// the authority on which keys it accepts; the client forwards them unchecked.
type Extras map[string]any

// Keys returns the extra keys in sorted order.
func (e Extras) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Payload is an insertion-ordered request body mapping.
//
// Absent values (untyped nil, or a nil pointer, map, slice or interface) stay
// in the mapping but are dropped when the payload is encoded, which is how
// optional fields are expressed:
//
//	var user *int
//	p := core.NewPayload().Set("name", "ci").Set("user", user)
//	json.Marshal(p) // {"name":"ci"}
//
// A Payload is not safe for concurrent mutation; each call builds its own.
type Payload struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{m: orderedmap.New[string, any]()}
}

// Set stores value under key. An existing key keeps its position.
func (p *Payload) Set(key string, value any) *Payload {
	p.m.Set(key, value)
	return p
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	return p.m.Get(key)
}

// Delete removes key.
func (p *Payload) Delete(key string) *Payload {
	p.m.Delete(key)
	return p
}

// Merge sets every extra key in sorted key order. Extras override existing
// keys in place, matching keyword-argument override semantics.
func (p *Payload) Merge(extra Extras) *Payload {
	for _, k := range extra.Keys() {
		p.m.Set(k, extra[k])
	}
	return p
}

// Len returns the number of keys, absent ones included.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the keys in insertion order, absent ones included.
func (p *Payload) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every present key in insertion order.
func (p *Payload) Each(fn func(key string, value any)) {
	if p == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if IsAbsent(pair.Value) {
			continue
		}
		fn(pair.Key, pair.Value)
	}
}

// Compact returns a copy holding only present keys.
func (p *Payload) Compact() *Payload {
	out := NewPayload()
	p.Each(func(k string, v any) {
		out.m.Set(k, v)
	})
	return out
}

// MarshalJSON encodes the present keys in insertion order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.Compact().m)
}

// IsAbsent reports whether v stands for an omitted optional value.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
