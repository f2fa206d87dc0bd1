/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package lantime pkg/lantime/value.go
package lantime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds, mirroring the JSON types.
const (
	KindNull Kind = iota // missing or JSON null
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

// String returns the JSON type name of k.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of a device status document. The zero Value is null, which is
// also what every failed lookup returns.
type Value struct {
	kind   Kind
	b      bool
	num    float64
	str    string
	list   []Value
	fields map[string]Value
}

// Null is the "not found" value.
var Null = Value{}

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number builds a number value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List builds a list value holding items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Object builds an object value. The map is used as-is.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{kind: KindObject, fields: fields}
}

// Parse decodes a JSON payload into a Value tree.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Null, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Null, fmt.Errorf("%w: trailing data after document", ErrDecodeDocument)
	}

	return FromInterface(raw), nil
}

// FromInterface converts the output of encoding/json (or any tree of maps, slices and
// scalars) into a Value. Unsupported scalars become null.
func FromInterface(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Null
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Null
		}

		return Number(f)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case []interface{}:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, FromInterface(item))
		}

		return List(items...)
	case map[string]interface{}:
		fields := make(map[string]Value, len(v))
		for key, item := range v {
			fields[key] = FromInterface(item)
		}

		return Object(fields)
	default:
		return Null
	}
}

// UnmarshalJSON lets a Value be embedded in other decoded structs.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null, i.e. absent or JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Get returns the named field of an object, or Null if v is not an object or the key is absent.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Null
	}

	field, ok := v.fields[key]
	if !ok {
		return Null
	}

	return field
}

// At follows keys from v, short-circuiting to Null on the first miss.
func (v Value) At(keys ...string) Value {
	cur := v

	for _, key := range keys {
		cur = cur.Get(key)
		if cur.kind == KindNull {
			return Null
		}
	}

	return cur
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.str, true
}

// Float returns the number held by v. Strings holding a decimal number are accepted
// because several firmware releases report counters as text.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// Items returns the elements of a list, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}

	return v.list
}

// Len reports the number of list elements or object fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Path is a dotted field path such as "data.status.system.cpuload". Keys containing
// dots are not supported; none of the LANTIME status keys use them.
type Path []string

// ParsePath splits a dotted path. The empty string yields a nil Path.
func ParsePath(dotted string) Path {
	if dotted == "" {
		return nil
	}

	return strings.Split(dotted, ".")
}

// Lookup resolves p against v.
func (p Path) Lookup(v Value) Value {
	return v.At(p...)
}
