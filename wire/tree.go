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
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/onflow/cadence-codec/errors"
)

// ToTree converts a wire value into a generic JSON tree
// (maps, slices, strings, bools and nils), the shape encoding/json
// produces when decoding into an `any`.
func ToTree(v Value) (tree any, err error) {
	prepared, err := Prepare(v)
	if err != nil {
		return nil, err
	}
	return treeOf(prepared), nil
}

func treeOf(prepared jsonValue) any {
	switch p := prepared.(type) {
	case nil:
		return nil

	case bool, string:
		return p

	case jsonEmptyValueObject:
		return map[string]any{
			typeKey: p.Type,
		}

	case jsonValueObject:
		return map[string]any{
			typeKey:  p.Type,
			valueKey: treeOf(p.Value),
		}

	case []jsonValue:
		values := make([]any, len(p))
		for i, element := range p {
			values[i] = treeOf(element)
		}
		return values

	case []jsonDictionaryItem:
		items := make([]any, len(p))
		for i, item := range p {
			items[i] = map[string]any{
				keyKey:   treeOf(item.Key),
				valueKey: treeOf(item.Value),
			}
		}
		return items

	case jsonCompositeValue:
		fields := make([]any, len(p.Fields))
		for i, field := range p.Fields {
			fields[i] = map[string]any{
				nameKey:  field.Name,
				valueKey: treeOf(field.Value),
			}
		}
		return map[string]any{
			idKey:     p.ID,
			fieldsKey: fields,
		}

	case jsonPathValue:
		return map[string]any{
			domainKey:     p.Domain,
			identifierKey: p.Identifier,
		}
	}

	panic(errors.NewUnreachableError())
}

var cborEncMode = func() cbor.EncMode {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

var cborDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

// EncodeCBOR returns the deterministic CBOR encoding of the given value.
// The CBOR data model mirrors the JSON-Cadence object structure,
// so a value survives a JSON -> CBOR -> JSON trip unchanged.
func EncodeCBOR(v Value) ([]byte, error) {
	tree, err := ToTree(v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(tree)
}

// DecodeCBOR decodes a wire value from its CBOR encoding.
func DecodeCBOR(b []byte) (Value, error) {
	var tree any
	err := cborDecMode.Unmarshal(b, &tree)
	if err != nil {
		return Value{}, errors.NewDefaultUserError("failed to decode CBOR: %w", err)
	}
	return FromTree(tree)
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	return EncodeCBOR(v)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(b []byte) error {
	decoded, err := DecodeCBOR(b)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
