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

	"github.com/onflow/cadence-codec/errors"
)

// An Encoder converts wire values into JSON-encoded bytes.
type Encoder struct {
	enc *json.Encoder
}

// Encode returns the JSON-encoded representation of the given value.
func Encode(value Value) ([]byte, error) {
	var w bytes.Buffer
	enc := NewEncoder(&w)

	err := enc.Encode(value)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(w.Bytes(), []byte{'\n'}), nil
}

// MustEncode returns the JSON-encoded representation of the given value,
// or panics if the value cannot be encoded.
func MustEncode(value Value) []byte {
	b, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return b
}

// NewEncoder initializes an Encoder that will write JSON-encoded bytes to the
// given io.Writer.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes the JSON-encoded representation of the given value to this
// encoder's io.Writer.
//
// This function returns an error if the given value's payload does not
// match its tag.
func (e *Encoder) Encode(value Value) (err error) {
	preparedValue, err := Prepare(value)
	if err != nil {
		return err
	}

	return e.enc.Encode(&preparedValue)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	preparedValue, err := Prepare(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(preparedValue)
}

// JSON struct definitions

type jsonValue any

type jsonEmptyValueObject struct {
	Type string `json:"type"`
}

type jsonValueObject struct {
	Type  string    `json:"type"`
	Value jsonValue `json:"value"`
}

type jsonDictionaryItem struct {
	Key   jsonValue `json:"key"`
	Value jsonValue `json:"value"`
}

type jsonCompositeValue struct {
	ID     string               `json:"id"`
	Fields []jsonCompositeField `json:"fields"`
}

type jsonCompositeField struct {
	Name  string    `json:"name"`
	Value jsonValue `json:"value"`
}

type jsonPathValue struct {
	Domain     string `json:"domain"`
	Identifier string `json:"identifier"`
}

// Prepare traverses the given value and constructs
// a struct representation that can be marshalled to JSON.
func Prepare(v Value) (prepared any, err error) {
	// capture panics that occur during struct preparation
	defer func() {
		if r := recover(); r != nil {
			panicErr, ok := r.(error)
			if !ok {
				panic(r)
			}

			err = fmt.Errorf("failed to encode value: %w", panicErr)
		}
	}()

	return prepare(v), nil
}

func prepare(v Value) jsonValue {
	switch v.Type.payloadKind() {
	case payloadKindNone:
		return jsonEmptyValueObject{Type: string(v.Type)}

	case payloadKindBool:
		return jsonValueObject{
			Type:  string(v.Type),
			Value: payloadAs[bool](v),
		}

	case payloadKindString:
		return jsonValueObject{
			Type:  string(v.Type),
			Value: payloadAs[string](v),
		}

	case payloadKindOptional:
		return prepareOptional(v)

	case payloadKindArray:
		return prepareArray(v)

	case payloadKindDictionary:
		return prepareDictionary(v)

	case payloadKindComposite:
		return prepareComposite(v)

	case payloadKindPath:
		path := payloadAs[Path](v)
		return jsonValueObject{
			Type: string(v.Type),
			Value: jsonPathValue{
				Domain:     path.Domain,
				Identifier: path.Identifier,
			},
		}
	}

	panic(errors.NewDefaultUserError("unsupported type: %q", v.Type))
}

func prepareOptional(v Value) jsonValue {
	if v.Value == nil {
		return jsonValueObject{
			Type:  string(v.Type),
			Value: nil,
		}
	}

	return jsonValueObject{
		Type:  string(v.Type),
		Value: prepare(payloadAs[Value](v)),
	}
}

func prepareArray(v Value) jsonValue {
	elements := payloadAs[[]Value](v)

	values := make([]jsonValue, len(elements))
	for i, element := range elements {
		values[i] = prepare(element)
	}

	return jsonValueObject{
		Type:  string(v.Type),
		Value: values,
	}
}

func prepareDictionary(v Value) jsonValue {
	pairs := payloadAs[[]KeyValuePair](v)

	items := make([]jsonDictionaryItem, len(pairs))
	for i, pair := range pairs {
		items[i] = jsonDictionaryItem{
			Key:   prepare(pair.Key),
			Value: prepare(pair.Value),
		}
	}

	return jsonValueObject{
		Type:  string(v.Type),
		Value: items,
	}
}

func prepareComposite(v Value) jsonValue {
	composite := payloadAs[Composite](v)

	fields := make([]jsonCompositeField, len(composite.Fields))
	for i, field := range composite.Fields {
		fields[i] = jsonCompositeField{
			Name:  field.Name,
			Value: prepare(field.Value),
		}
	}

	return jsonValueObject{
		Type: string(v.Type),
		Value: jsonCompositeValue{
			ID:     composite.ID,
			Fields: fields,
		},
	}
}

func payloadAs[T any](v Value) T {
	payload, ok := v.Value.(T)
	if !ok {
		var expected T
		panic(errors.NewDefaultUserError(
			"invalid %s payload: expected %T, got %T",
			v.Type,
			expected,
			v.Value,
		))
	}
	return payload
}
