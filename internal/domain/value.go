package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the dynamic type held by a Value.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueString
	ValueBool
	ValueNumber
	ValueObject
	ValueList
)

// Value is a JSON value whose shape is not known in advance. Verb
// configurations differ between classes, so they are kept as an open tree
// instead of a fixed struct.
type Value struct {
	kind ValueKind
	str  string
	b    bool
	num  json.Number
	obj  Attributes
	list []Value
}

// Attributes is an open mapping of attribute name to Value.
type Attributes map[string]Value

func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

func ObjectValue(a Attributes) Value { return Value{kind: ValueObject, obj: a} }

func (v Value) Kind() ValueKind { return v.kind }

// String returns the textual form of scalar values and "" for null,
// objects and lists.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueNumber:
		return v.num.String()
	default:
		return ""
	}
}

// Bool reports the boolean held by v. Non-boolean values report false.
func (v Value) Bool() bool {
	return v.kind == ValueBool && v.b
}

// Truthy reports whether v counts as set in a loosely typed flag: true,
// a non-empty string, a non-zero number, or any object or list.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueString:
		return v.str != ""
	case ValueNumber:
		f, err := v.num.Float64()
		return err == nil && f != 0
	case ValueObject, ValueList:
		return true
	default:
		return false
	}
}

// Object returns the attributes of an object value, nil otherwise.
func (v Value) Object() Attributes {
	if v.kind != ValueObject {
		return nil
	}
	return v.obj
}

// List returns the elements of a list value, nil otherwise.
func (v Value) List() []Value {
	if v.kind != ValueList {
		return nil
	}
	return v.list
}

// Lookup walks nested objects by key.
func (a Attributes) Lookup(path ...string) (Value, bool) {
	cur := a
	for i, key := range path {
		v, ok := cur[key]
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if v.kind != ValueObject {
			return Value{}, false
		}
		cur = v.obj
	}
	return Value{}, false
}

// Strings returns the scalar attributes as strings, skipping nested values.
func (a Attributes) Strings() map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		switch v.kind {
		case ValueString, ValueNumber, ValueBool:
			out[k] = v.String()
		}
	}
	return out
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = valueFromAny(raw)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueBool:
		return json.Marshal(v.b)
	case ValueNumber:
		return []byte(v.num.String()), nil
	case ValueObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func valueFromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{}
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case json.Number:
		return Value{kind: ValueNumber, num: t}
	case map[string]any:
		obj := make(Attributes, len(t))
		for k, e := range t {
			obj[k] = valueFromAny(e)
		}
		return ObjectValue(obj)
	case []any:
		list := make([]Value, len(t))
		for i, e := range t {
			list[i] = valueFromAny(e)
		}
		return Value{kind: ValueList, list: list}
	default:
		return StringValue(fmt.Sprint(t))
	}
}
