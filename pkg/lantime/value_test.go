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

package lantime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKinds(t *testing.T) {
	v, err := Parse([]byte(`{"s": "x", "n": 1.5, "b": true, "l": [1, "a"], "o": {"k": null}, "z": null}`))
	require.NoError(t, err)

	assert.Equal(t, KindObject, v.Kind())
	assert.Equal(t, KindString, v.Get("s").Kind())
	assert.Equal(t, KindNumber, v.Get("n").Kind())
	assert.Equal(t, KindBool, v.Get("b").Kind())
	assert.Equal(t, KindList, v.Get("l").Kind())
	assert.Equal(t, KindObject, v.Get("o").Kind())
	assert.True(t, v.Get("z").IsNull())
	assert.True(t, v.Get("missing").IsNull())
	assert.Equal(t, 2, v.Get("l").Len())
}

func TestParseErrors(t *testing.T) {
	for _, payload := range []string{``, `{`, `{"a": 1} trailing`, `<html></html>`} {
		_, err := Parse([]byte(payload))
		require.ErrorIs(t, err, ErrDecodeDocument, "payload %q", payload)
	}
}

func TestAtShortCircuits(t *testing.T) {
	v := mustParse(t, `{"a": {"b": {"c": "deep"}, "s": "leaf"}}`)

	got, ok := v.At("a", "b", "c").Str()
	require.True(t, ok)
	assert.Equal(t, "deep", got)

	assert.True(t, v.At("a", "s", "c").IsNull(), "descending into a string")
	assert.True(t, v.At("a", "x", "c").IsNull(), "absent intermediate key")
	assert.True(t, Null.At("a").IsNull())
	assert.Equal(t, v, v.At(), "empty path returns the receiver")
}

func TestFloatCoercion(t *testing.T) {
	tests := []struct {
		value Value
		want  float64
		ok    bool
	}{
		{Number(3), 3, true},
		{String("42"), 42, true},
		{String(" 1e3 "), 1000, true},
		{String("12abc"), 0, false},
		{String("Inf"), 0, false},
		{Bool(true), 0, false},
		{Null, 0, false},
		{List(Number(1)), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.value.Float()
		assert.Equal(t, tt.ok, ok, "value kind %s", tt.value.Kind())
		assert.InDelta(t, tt.want, got, 1e-9)
	}
}

func TestStrRejectsOtherKinds(t *testing.T) {
	_, ok := Number(1).Str()
	assert.False(t, ok)

	s, ok := String("").Str()
	assert.True(t, ok)
	assert.Empty(t, s)
}

func TestFromInterface(t *testing.T) {
	v := FromInterface(map[string]interface{}{
		"n":   7,
		"f":   float32(0.5),
		"num": json.Number("12"),
		"bad": json.Number("1e999"),
		"ch":  make(chan int),
		"l":   []interface{}{"a", nil},
	})

	n, _ := v.Get("n").Float()
	assert.InDelta(t, 7.0, n, 1e-9)

	f, _ := v.Get("f").Float()
	assert.InDelta(t, 0.5, f, 1e-9)

	num, _ := v.Get("num").Float()
	assert.InDelta(t, 12.0, num, 1e-9)

	assert.True(t, v.Get("bad").IsNull())
	assert.True(t, v.Get("ch").IsNull())
	assert.True(t, v.Get("l").Items()[1].IsNull())
}

func TestValueUnmarshalJSON(t *testing.T) {
	var envelope struct {
		Payload Value `json:"payload"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"payload": {"cpuload": "1 2 3"}}`), &envelope))

	got, ok := envelope.Payload.Get("cpuload").Str()
	require.True(t, ok)
	assert.Equal(t, "1 2 3", got)
}

func TestParsePath(t *testing.T) {
	p := ParsePath("data.status.system.cpuload")

	assert.Equal(t, Path{"data", "status", "system", "cpuload"}, p)
	assert.Nil(t, ParsePath(""))
}
