package ast

import "strconv"

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindObject Kind = iota + 1
	KindArray
	KindProperty
	KindValue
)

// String returns the kind name used by the parser in error messages.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindProperty:
		return "Property"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Node is implemented by *Object, *Array, *Property and *Value. The set is
// closed: code inspecting a tree switches on the concrete type and treats
// anything unexpected as not applicable.
type Node interface {
	Kind() Kind
	Loc() Location
	node()
}

// Object is a JSON object. Children keep document order and duplicate keys.
type Object struct {
	Children []*Property
	Location Location
}

// Array is a JSON array.
type Array struct {
	Children []Node
	Location Location
}

// Identifier is the key of a Property.
type Identifier struct {
	Value    string // Decoded key
	Raw      string // Key as written, including quotes
	Location Location
}

// Property is a key/value member of an Object.
type Property struct {
	Key      *Identifier
	Value    Node
	Location Location
}

// ValueType is the scalar type of a Value.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeNull    ValueType = "null"
)

// Value is a scalar leaf.
type Value struct {
	Type     ValueType
	Str      string  // Decoded string for ValueTypeString
	Num      float64 // Parsed number for ValueTypeNumber
	Bool     bool    // For ValueTypeBoolean
	Raw      string  // Source text of the literal
	Location Location
}

func (*Object) Kind() Kind   { return KindObject }
func (*Array) Kind() Kind    { return KindArray }
func (*Property) Kind() Kind { return KindProperty }
func (*Value) Kind() Kind    { return KindValue }

func (o *Object) Loc() Location   { return o.Location }
func (a *Array) Loc() Location    { return a.Location }
func (p *Property) Loc() Location { return p.Location }
func (v *Value) Loc() Location    { return v.Location }

func (*Object) node()   {}
func (*Array) node()    {}
func (*Property) node() {}
func (*Value) node()    {}

// Get returns the first child property with the given key, or nil.
func (o *Object) Get(key string) *Property {
	if o == nil {
		return nil
	}
	for _, p := range o.Children {
		if p.KeyName() == key {
			return p
		}
	}
	return nil
}

// Has reports whether the object has a property with the given key.
func (o *Object) Has(key string) bool {
	return o.Get(key) != nil
}

// KeyName returns the property key or "" when the key is missing.
func (p *Property) KeyName() string {
	if p == nil || p.Key == nil {
		return ""
	}
	return p.Key.Value
}

// StringValue returns the property value when it is a string literal.
func (p *Property) StringValue() (string, bool) {
	if p == nil {
		return "", false
	}
	return StringOf(p.Value)
}

// ObjectValue returns the property value when it is an object.
func (p *Property) ObjectValue() (*Object, bool) {
	if p == nil {
		return nil, false
	}
	o, ok := p.Value.(*Object)
	return o, ok
}

// StringOf returns the decoded string of n when n is a string Value.
func StringOf(n Node) (string, bool) {
	v, ok := n.(*Value)
	if !ok || v.Type != ValueTypeString {
		return "", false
	}
	return v.Str, true
}

// NumberOf returns n as a float64. Numeric strings such as "10" are accepted,
// since modifier values are usually written as strings.
func NumberOf(n Node) (float64, bool) {
	v, ok := n.(*Value)
	if !ok {
		return 0, false
	}
	switch v.Type {
	case ValueTypeNumber:
		return v.Num, true
	case ValueTypeString:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
