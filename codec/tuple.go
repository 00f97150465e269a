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

	"github.com/onflow/cadence-codec/wire"
)

type tupleCodec struct {
	elements []AnyCodec
}

var _ Codec[[]any, []any] = tupleCodec{}

// Tuple returns a codec for fixed-length arrays with one codec per position.
// Tuples use the Array tag on the wire.
func Tuple(elements ...AnyCodec) Codec[[]any, []any] {
	copied := make([]AnyCodec, len(elements))
	copy(copied, elements)

	return tupleCodec{
		elements: copied,
	}
}

func (c tupleCodec) Tag() wire.Tag {
	return wire.TagArray
}

func (c tupleCodec) arityMismatch(path ValuePath, actual int) error {
	return NewSchemaMismatchError(
		path,
		fmt.Sprintf("%d elements", len(c.elements)),
		fmt.Sprintf("%d elements", actual),
	)
}

func (c tupleCodec) Validate(path ValuePath, value wire.Value) error {
	elements, err := expectPayload[[]wire.Value](path, value, wire.TagArray)
	if err != nil {
		return err
	}

	payloadPath := path.payloadPath()

	if len(elements) != len(c.elements) {
		return c.arityMismatch(payloadPath, len(elements))
	}

	for i, element := range elements {
		err = c.elements[i].Validate(payloadPath.Index(i), element)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c tupleCodec) Encode(ctx EncodeContext, values []any) (wire.Value, error) {
	payloadPath := ValuePath{}.payloadPath()

	if len(values) != len(c.elements) {
		return wire.Value{}, c.arityMismatch(payloadPath, len(values))
	}

	encoded := make([]wire.Value, len(values))

	for i, value := range values {
		element, err := c.elements[i].EncodeAny(ctx, value)
		if err != nil {
			return wire.Value{}, atPath(err, payloadPath.Index(i))
		}
		encoded[i] = element
	}

	return wire.NewArray(encoded...), nil
}

func (c tupleCodec) Decode(value wire.Value) ([]any, error) {
	err := c.Validate(nil, value)
	if err != nil {
		return nil, err
	}

	elements := value.Value.([]wire.Value)
	decoded := make([]any, len(elements))

	for i, element := range elements {
		decoded[i], err = c.elements[i].DecodeAny(element)
		if err != nil {
			return nil, atPath(err, ValuePath{}.payloadPath().Index(i))
		}
	}

	return decoded, nil
}

func (c tupleCodec) EncodeAny(ctx EncodeContext, value any) (wire.Value, error) {
	elements, err := sliceElements(value, wire.TagArray)
	if err != nil {
		return wire.Value{}, err
	}
	return c.Encode(ctx, elements)
}

func (c tupleCodec) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}
