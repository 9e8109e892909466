package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies a Value variant.
type Kind int

// Value variants.
const (
	KindScalar Kind = iota
	KindArray
	KindObject
	KindEntryLink
	KindAssetLink
	KindNode
)

// String returns the string representation.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindEntryLink:
		return "entry-link"
	case KindAssetLink:
		return "asset-link"
	case KindNode:
		return "node"
	default:
		return "unknown"
	}
}

// Value is a field value fetched from a source.
// The set of implementations is closed: Scalar, *Array, *Object,
// *EntryLink, *AssetLink and *Node.
type Value interface {
	Kind() Kind
}

// Scalar holds nil, a string, a bool or a json.Number.
type Scalar struct {
	V any
}

// Kind implements Value.
func (Scalar) Kind() Kind { return KindScalar }

// String wraps s as a Scalar.
func String(s string) Scalar { return Scalar{V: s} }

// Number wraps a JSON number literal as a Scalar.
func Number(n string) Scalar { return Scalar{V: json.Number(n)} }

// Bool wraps b as a Scalar.
func Bool(b bool) Scalar { return Scalar{V: b} }

// AsString returns the scalar's string and whether it holds one.
func (s Scalar) AsString() (string, bool) {
	str, ok := s.V.(string)
	return str, ok
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return encodeJSON(s.V)
}

// Array is an ordered list of values.
type Array struct {
	Items []Value
}

// NewArray creates an array holding items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Kind implements Value.
func (*Array) Kind() Kind { return KindArray }

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range a.Items {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalValue(item)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Object is a string-keyed map that remembers insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// GetString returns the string scalar stored under key, or "".
func (o *Object) GetString(key string) string {
	v, ok := o.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(Scalar)
	if !ok {
		return ""
	}
	str, _ := s.AsString()
	return str
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// MarshalJSON implements json.Marshaler, keeping key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		b, err := marshalValue(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EntryLink references another entry by ID.
// Entry is nil when the link could not be resolved.
type EntryLink struct {
	ID    string
	Entry *Entry
}

// Kind implements Value.
func (*EntryLink) Kind() Kind { return KindEntryLink }

// AssetLink references an asset by ID.
// Asset is nil when the link could not be resolved.
type AssetLink struct {
	ID    string
	Asset *Asset
}

// Kind implements Value.
func (*AssetLink) Kind() Kind { return KindAssetLink }

// Node is one node of a rich document tree.
// The root of a rich text field has NodeType "document".
type Node struct {
	NodeType string
	Value    string
	Marks    []string
	// Data holds the node's data object minus its target.
	Data *Object
	// Target is the resolved data.target, usually an *EntryLink or *AssetLink.
	Target  Value
	Content []*Node
}

// Kind implements Value.
func (*Node) Kind() Kind { return KindNode }

// IsDocument reports whether n is the root of a rich document.
func (n *Node) IsDocument() bool {
	return n != nil && n.NodeType == NodeDocument
}

// Rich document node types.
const (
	NodeDocument = "document"
	NodeText     = "text"
)

// IsRichDocument reports whether v is a rich document root.
func IsRichDocument(v Value) bool {
	n, ok := v.(*Node)
	return ok && n.IsDocument()
}

// marshalValue encodes values that have a plain JSON form.
// Links and nodes must be cloned before encoding.
func marshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case Scalar:
		return val.MarshalJSON()
	case *Array:
		return val.MarshalJSON()
	case *Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("%w: %s value has no JSON form", ErrInvalidInput, v.Kind())
	}
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
