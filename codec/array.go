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

package codec

import (
	"fmt"
	"reflect"

	"github.com/onflow/cadence-codec/wire"
)

type arrayCodec[D, E any] struct {
	element Codec[D, E]
}

var _ Codec[[]any, []any] = arrayCodec[any, any]{}

// Array returns a codec for variable-length arrays whose elements use the given codec.
func Array[D, E any](element Codec[D, E]) Codec[[]D, []E] {
	return arrayCodec[D, E]{
		element: element,
	}
}

func (c arrayCodec[D, E]) Tag() wire.Tag {
	return wire.TagArray
}

func (c arrayCodec[D, E]) Validate(path ValuePath, value wire.Value) error {
	elements, err := expectPayload[[]wire.Value](path, value, wire.TagArray)
	if err != nil {
		return err
	}

	payloadPath := path.payloadPath()
	for i, element := range elements {
		err = c.element.Validate(payloadPath.Index(i), element)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c arrayCodec[D, E]) Encode(ctx EncodeContext, values []E) (wire.Value, error) {
	encoded := make([]wire.Value, len(values))

	for i, value := range values {
		element, err := c.element.Encode(ctx, value)
		if err != nil {
			return wire.Value{}, atPath(err, ValuePath{}.payloadPath().Index(i))
		}
		encoded[i] = element
	}

	return wire.NewArray(encoded...), nil
}

func (c arrayCodec[D, E]) Decode(value wire.Value) (result []D, err error) {
	err = c.Validate(nil, value)
	if err != nil {
		return
	}

	elements := value.Value.([]wire.Value)
	decoded := make([]D, len(elements))

	for i, element := range elements {
		decoded[i], err = c.element.Decode(element)
		if err != nil {
			return nil, atPath(err, ValuePath{}.payloadPath().Index(i))
		}
	}

	return decoded, nil
}

// EncodeAny accepts a []E, or any other slice or array
// whose elements are accepted by the element codec.
func (c arrayCodec[D, E]) EncodeAny(ctx EncodeContext, value any) (wire.Value, error) {
	if values, ok := value.([]E); ok {
		return c.Encode(ctx, values)
	}

	elements, err := sliceElements(value, wire.TagArray)
	if err != nil {
		return wire.Value{}, err
	}

	encoded := make([]wire.Value, len(elements))

	for i, element := range elements {
		encoded[i], err = c.element.EncodeAny(ctx, element)
		if err != nil {
			return wire.Value{}, atPath(err, ValuePath{}.payloadPath().Index(i))
		}
	}

	return wire.NewArray(encoded...), nil
}

func (c arrayCodec[D, E]) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}

// sliceElements returns the elements of a slice or array of any element type.
func sliceElements(value any, tag wire.Tag) ([]any, error) {
	if values, ok := value.([]any); ok {
		return values, nil
	}

	reflectValue := reflect.ValueOf(value)
	switch reflectValue.Kind() {
	case reflect.Slice, reflect.Array:
		elements := make([]any, reflectValue.Len())
		for i := range elements {
			elements[i] = reflectValue.Index(i).Interface()
		}
		return elements, nil
	}

	return nil, NewSchemaMismatchError(
		nil,
		fmt.Sprintf("%s input (slice)", tag),
		fmt.Sprintf("%T", value),
	)
}
