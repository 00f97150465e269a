/*
 * Cadence - The resource-oriented smart contract programming language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/onflow/cadence-codec/errors"
)

type pathElement interface {
	Append(w io.Writer)
}

type indexPathElement int

var _ pathElement = indexPathElement(0)

func (e indexPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, "[%d]", int(e))
}

type propertyPathElement string

var _ pathElement = propertyPathElement("")

func (e propertyPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, ".%s", e)
}

// A Decoder decodes JSON-encoded representations of wire values.
//
// The decoder only checks that the document is structurally valid JSON-Cadence:
// every object has a known type tag and a payload of the right JSON kind.
// Checking a value against an expected type is the job of a codec.
type Decoder struct {
	dec         *json.Decoder
	pathContext []pathElement
}

// Decode returns a wire value decoded from its JSON-encoded representation.
//
// This function returns an error if the bytes represent JSON that is malformed
// or does not conform to the JSON-Cadence format.
func Decode(b []byte) (Value, error) {
	r := bytes.NewReader(b)
	dec := NewDecoder(r)

	v, err := dec.Decode()
	if err != nil {
		return Value{}, err
	}

	// the input must contain exactly one value
	_, err = dec.dec.Token()
	if err != io.EOF {
		return Value{}, errors.NewDefaultUserError(
			"failed to decode JSON: unexpected data after value at offset %d",
			dec.dec.InputOffset(),
		)
	}

	return v, nil
}

// NewDecoder initializes a Decoder that will decode JSON-encoded bytes from the
// given io.Reader.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec:         json.NewDecoder(r),
		pathContext: make([]pathElement, 0, 8),
	}
}

// Decode reads JSON-encoded bytes from the io.Reader and decodes them to a
// wire value.
func (d *Decoder) Decode() (value Value, err error) {
	var tree any

	err = d.dec.Decode(&tree)
	if err != nil {
		return Value{}, errors.NewDefaultUserError("failed to decode JSON: %w", err)
	}

	return d.decodeTree(tree)
}

// FromTree converts a generic JSON tree, as produced by encoding/json
// when decoding into an `any`, into a wire value.
func FromTree(tree any) (Value, error) {
	d := &Decoder{
		pathContext: make([]pathElement, 0, 8),
	}
	return d.decodeTree(tree)
}

func (d *Decoder) decodeTree(tree any) (value Value, err error) {
	// capture panics that occur during decoding
	defer func() {
		if r := recover(); r != nil {
			panicErr, isError := r.(error)
			if !isError {
				panic(r)
			}

			format := "failed to decode JSON-Cadence value: %w"

			path := d.getPathString()
			if path != "" {
				format += fmt.Sprintf(" (at %s)", path)
			}

			err = errors.NewDefaultUserError(format, panicErr)
		}
	}()

	value = d.decodeValue(tree)
	return value, nil
}

const (
	typeKey       = "type"
	valueKey      = "value"
	keyKey        = "key"
	nameKey       = "name"
	fieldsKey     = "fields"
	idKey         = "id"
	domainKey     = "domain"
	identifierKey = "identifier"
)

func (d *Decoder) pushPath(element pathElement) {
	d.pathContext = append(d.pathContext, element)
}

func (d *Decoder) popPath() {
	if len(d.pathContext) > 0 {
		d.pathContext = d.pathContext[:len(d.pathContext)-1]
	}
}

func (d *Decoder) getPathString() string {
	if len(d.pathContext) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, element := range d.pathContext {
		element.Append(&builder)
	}
	return builder.String()
}

func (d *Decoder) decodeValue(v any) Value {
	obj := toObject(v)

	tag := Tag(get(d, obj, typeKey, toString))

	kind := tag.payloadKind()

	switch kind {
	case payloadKindUnknown:
		panic(errors.NewDefaultUserError("invalid type: %s", tag))

	case payloadKindNone:
		// void is a special case, does not have "value" field
		if len(obj) != 1 {
			panic(errors.NewDefaultUserError("invalid additional fields in %s value", tag))
		}
		return Value{Type: tag}
	}

	// object should only contain two keys: "type", "value"
	if len(obj) != 2 {
		panic(errors.NewDefaultUserError(
			"expected JSON object with keys `%s` and `%s`",
			typeKey,
			valueKey,
		))
	}

	payload := get(d, obj, valueKey, func(valueJSON any) any {
		switch kind {
		case payloadKindBool:
			return toBool(valueJSON)
		case payloadKindString:
			return toString(valueJSON)
		case payloadKindOptional:
			return d.decodeOptional(valueJSON)
		case payloadKindArray:
			return d.decodeArray(valueJSON)
		case payloadKindDictionary:
			return d.decodeDictionary(valueJSON)
		case payloadKindComposite:
			return d.decodeComposite(valueJSON)
		case payloadKindPath:
			return d.decodePath(valueJSON)
		}

		panic(errors.NewUnreachableError())
	})

	return Value{
		Type:  tag,
		Value: payload,
	}
}

func (d *Decoder) decodeOptional(valueJSON any) any {
	if valueJSON == nil {
		return nil
	}

	return d.decodeValue(valueJSON)
}

func (d *Decoder) decodeArray(valueJSON any) []Value {
	v := toSlice(valueJSON)

	values := make([]Value, len(v))

	for i, val := range v {
		d.pushPath(indexPathElement(i))
		values[i] = d.decodeValue(val)
		d.popPath()
	}

	return values
}

func (d *Decoder) decodeDictionary(valueJSON any) []KeyValuePair {
	v := toSlice(valueJSON)

	pairs := make([]KeyValuePair, len(v))

	for i, val := range v {
		d.pushPath(indexPathElement(i))
		pairs[i] = d.decodeKeyValuePair(val)
		d.popPath()
	}

	return pairs
}

func (d *Decoder) decodeKeyValuePair(valueJSON any) KeyValuePair {
	obj := toObject(valueJSON)

	return KeyValuePair{
		Key:   get(d, obj, keyKey, d.decodeValue),
		Value: get(d, obj, valueKey, d.decodeValue),
	}
}

func (d *Decoder) decodeComposite(valueJSON any) Composite {
	obj := toObject(valueJSON)

	return Composite{
		ID:     get(d, obj, idKey, toString),
		Fields: get(d, obj, fieldsKey, d.decodeCompositeFields),
	}
}

func (d *Decoder) decodeCompositeFields(valueJSON any) []Field {
	v := toSlice(valueJSON)

	fields := make([]Field, len(v))

	for i, val := range v {
		d.pushPath(indexPathElement(i))
		fields[i] = d.decodeCompositeField(val)
		d.popPath()
	}

	return fields
}

func (d *Decoder) decodeCompositeField(valueJSON any) Field {
	obj := toObject(valueJSON)

	return Field{
		Name:  get(d, obj, nameKey, toString),
		Value: get(d, obj, valueKey, d.decodeValue),
	}
}

func (d *Decoder) decodePath(valueJSON any) Path {
	obj := toObject(valueJSON)

	return Path{
		Domain:     get(d, obj, domainKey, toString),
		Identifier: get(d, obj, identifierKey, toString),
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// JSON types

type jsonObject map[string]any

func get[T any](d *Decoder, obj jsonObject, key string, f func(valueJSON any) T) T {
	v, ok := obj[key]
	if !ok {
		panic(errors.NewDefaultUserError("missing property: %s", key))
	}

	d.pushPath(propertyPathElement(key))
	result := f(v)
	d.popPath()
	return result
}

// JSON conversion helpers

func toBool(valueJSON any) bool {
	v, ok := valueJSON.(bool)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON bool, got %s", describeJSON(valueJSON)))
	}

	return v
}

func toString(valueJSON any) string {
	v, ok := valueJSON.(string)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON string, got %s", describeJSON(valueJSON)))
	}

	return v
}

func toSlice(valueJSON any) []any {
	v, ok := valueJSON.([]any)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON array, got %s", describeJSON(valueJSON)))
	}

	return v
}

func toObject(valueJSON any) jsonObject {
	v, ok := valueJSON.(map[string]any)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON object, got %s", describeJSON(valueJSON)))
	}

	return v
}

func describeJSON(valueJSON any) string {
	switch valueJSON.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", valueJSON)
}
