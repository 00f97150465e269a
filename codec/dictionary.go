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
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/onflow/cadence-codec/wire"
)

type dictionaryCodec[DK comparable, DV any, EK comparable, EV any] struct {
	key   Codec[DK, EK]
	value Codec[DV, EV]
}

var _ Codec[map[any]any, map[any]any] = dictionaryCodec[any, any, any, any]{}

// Dictionary returns a codec for dictionaries.
//
// On the wire a dictionary is a list of key-value pairs, ordered by the
// JSON encoding of the keys. When decoding, a key occurring more than once
// takes the value of its last occurrence.
func Dictionary[DK comparable, DV any, EK comparable, EV any](
	key Codec[DK, EK],
	value Codec[DV, EV],
) Codec[map[DK]DV, map[EK]EV] {
	return dictionaryCodec[DK, DV, EK, EV]{
		key:   key,
		value: value,
	}
}

func (c dictionaryCodec[DK, DV, EK, EV]) Tag() wire.Tag {
	return wire.TagDictionary
}

func (c dictionaryCodec[DK, DV, EK, EV]) Validate(path ValuePath, value wire.Value) error {
	pairs, err := expectPayload[[]wire.KeyValuePair](path, value, wire.TagDictionary)
	if err != nil {
		return err
	}

	payloadPath := path.payloadPath()
	for i, pair := range pairs {
		pairPath := payloadPath.Index(i)

		err = c.key.Validate(pairPath.Property("key"), pair.Key)
		if err != nil {
			return err
		}

		err = c.value.Validate(pairPath.Property("value"), pair.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c dictionaryCodec[DK, DV, EK, EV]) Encode(ctx EncodeContext, values map[EK]EV) (wire.Value, error) {
	pairs := make([]encodedPair, 0, len(values))

	for key, value := range values {
		pair, err := encodePair(
			key,
			func() (wire.Value, error) { return c.key.Encode(ctx, key) },
			func() (wire.Value, error) { return c.value.Encode(ctx, value) },
		)
		if err != nil {
			return wire.Value{}, err
		}
		pairs = append(pairs, pair)
	}

	return sortedDictionary(pairs), nil
}

// EncodeAny accepts a map[EK]EV, or any other map whose keys and values
// are accepted by the key and value codecs.
func (c dictionaryCodec[DK, DV, EK, EV]) EncodeAny(ctx EncodeContext, values any) (wire.Value, error) {
	if typed, ok := values.(map[EK]EV); ok {
		return c.Encode(ctx, typed)
	}

	reflectValue := reflect.ValueOf(values)
	if reflectValue.Kind() != reflect.Map {
		return wire.Value{}, NewSchemaMismatchError(
			nil,
			fmt.Sprintf("%s input (map)", wire.TagDictionary),
			fmt.Sprintf("%T", values),
		)
	}

	pairs := make([]encodedPair, 0, reflectValue.Len())

	iterator := reflectValue.MapRange()
	for iterator.Next() {
		key := iterator.Key().Interface()
		value := iterator.Value().Interface()

		pair, err := encodePair(
			key,
			func() (wire.Value, error) { return c.key.EncodeAny(ctx, key) },
			func() (wire.Value, error) { return c.value.EncodeAny(ctx, value) },
		)
		if err != nil {
			return wire.Value{}, err
		}
		pairs = append(pairs, pair)
	}

	return sortedDictionary(pairs), nil
}

func encodePair(
	key any,
	encodeKey func() (wire.Value, error),
	encodeValue func() (wire.Value, error),
) (pair encodedPair, err error) {
	entryPath := ValuePath{}.payloadPath().Key(key)

	pair.Key, err = encodeKey()
	if err != nil {
		return pair, atPath(err, entryPath.Property("key"))
	}

	pair.Value, err = encodeValue()
	if err != nil {
		return pair, atPath(err, entryPath.Property("value"))
	}

	pair.sortKey, err = wire.Encode(pair.Key)
	if err != nil {
		return pair, atPath(err, entryPath.Property("key"))
	}

	return pair, nil
}

func (c dictionaryCodec[DK, DV, EK, EV]) Decode(value wire.Value) (result map[DK]DV, err error) {
	err = c.Validate(nil, value)
	if err != nil {
		return
	}

	pairs := value.Value.([]wire.KeyValuePair)
	decoded := make(map[DK]DV, len(pairs))

	// Keys which are pointers to arbitrary-precision integers are compared by value
	bigIntKeys := map[string]DK{}

	for i, pair := range pairs {
		pairPath := ValuePath{}.payloadPath().Index(i)

		decodedKey, err := c.key.Decode(pair.Key)
		if err != nil {
			return nil, atPath(err, pairPath.Property("key"))
		}

		decodedValue, err := c.value.Decode(pair.Value)
		if err != nil {
			return nil, atPath(err, pairPath.Property("value"))
		}

		if bigInt, ok := any(decodedKey).(*big.Int); ok {
			literal := bigInt.String()
			if existing, ok := bigIntKeys[literal]; ok {
				decodedKey = existing
			} else {
				bigIntKeys[literal] = decodedKey
			}
		}

		if composite, ok := any(decodedKey).(Composite); ok {
			comparableKey, err := c.compositeKey(composite)
			if err != nil {
				return nil, atPath(err, pairPath.Property("key"))
			}
			if key, ok := any(comparableKey).(DK); ok {
				decodedKey = key
			}
		}

		if !hashable(reflect.ValueOf(any(decodedKey))) {
			return nil, NewSchemaMismatchError(
				pairPath.Property("key"),
				"hashable dictionary key",
				fmt.Sprintf("%T", decodedKey),
			)
		}

		// last write wins
		decoded[decodedKey] = decodedValue
	}

	return decoded, nil
}

func (c dictionaryCodec[DK, DV, EK, EV]) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}

// compositeKey returns the comparable form of a decoded composite key.
// The key is re-encoded, so fields are in declaration order.
func (c dictionaryCodec[DK, DV, EK, EV]) compositeKey(composite Composite) (CompositeKey, error) {
	encoded, err := c.key.EncodeAny(Background(), composite)
	if err != nil {
		return CompositeKey{}, err
	}

	literal, err := wire.Encode(encoded)
	if err != nil {
		return CompositeKey{}, err
	}

	return CompositeKey{
		Identifier: composite.Identifier,
		Value:      string(literal),
	}, nil
}

// hashable reports whether the value can be used as a Go map key.
// Values of comparable types may still contain uncomparable values in interfaces.
func hashable(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		return hashable(value.Elem())
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			if !hashable(value.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if !hashable(value.Index(i)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

type encodedPair struct {
	wire.KeyValuePair
	sortKey []byte
}

func sortedDictionary(pairs []encodedPair) wire.Value {
	sort.SliceStable(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].sortKey, pairs[j].sortKey) < 0
	})

	keyValuePairs := make([]wire.KeyValuePair, len(pairs))
	for i, pair := range pairs {
		keyValuePairs[i] = pair.KeyValuePair
	}

	return wire.NewDictionary(keyValuePairs...)
}
