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

// Package codec converts between native Go values and JSON-Cadence wire values.
//
// A codec pairs an encoder, a schema and a decoder for one type.
// Leaf codecs (Bool, Int, Address, ...) are package-level values;
// combinators (Optional, Array, Dictionary, Tuple) and composite codecs
// (Struct, Resource, Event, Contract, Enum) build codecs from other codecs.
//
// Codecs are immutable and safe for concurrent use.
package codec

import (
	"fmt"
	"reflect"

	"github.com/onflow/cadence-codec/wire"
)

// Schema checks the structure of a wire value.
type Schema interface {
	// Validate returns a SchemaError if the value does not conform to the schema.
	// The path is the location of the value, used in error messages.
	Validate(path ValuePath, value wire.Value) error
}

// SchemaFunc is a function implementing Schema.
type SchemaFunc func(path ValuePath, value wire.Value) error

var _ Schema = SchemaFunc(nil)

func (f SchemaFunc) Validate(path ValuePath, value wire.Value) error {
	return f(path, value)
}

// AnyCodec is the type-erased form of a codec.
// Values passed to EncodeAny are checked at run time.
type AnyCodec interface {
	Schema
	// Tag returns the wire tag of the values produced by the codec.
	Tag() wire.Tag
	EncodeAny(ctx EncodeContext, value any) (wire.Value, error)
	DecodeAny(value wire.Value) (any, error)
}

// Codec converts between values of the decoded type D,
// values of the encodable type E, and wire values.
type Codec[D, E any] interface {
	AnyCodec
	Encode(ctx EncodeContext, value E) (wire.Value, error)
	// Decode validates the value against the codec's schema before decoding it.
	// No partially decoded value is ever returned.
	Decode(value wire.Value) (D, error)
}

// EncodeFunc encodes a native value into a wire value.
type EncodeFunc[E any] func(ctx EncodeContext, value E) (wire.Value, error)

// DecodeFunc decodes a wire value which was already validated against the codec's schema.
type DecodeFunc[D any] func(value wire.Value) (D, error)

type funcCodec[D, E any] struct {
	tag    wire.Tag
	encode EncodeFunc[E]
	schema Schema
	decode DecodeFunc[D]
}

var _ Codec[any, any] = &funcCodec[any, any]{}

// New returns a codec from an encoder, a schema, and a decoder for validated values.
func New[D, E any](
	tag wire.Tag,
	encode EncodeFunc[E],
	schema Schema,
	decode DecodeFunc[D],
) Codec[D, E] {
	return &funcCodec[D, E]{
		tag:    tag,
		encode: encode,
		schema: schema,
		decode: decode,
	}
}

func (c *funcCodec[D, E]) Tag() wire.Tag {
	return c.tag
}

func (c *funcCodec[D, E]) Validate(path ValuePath, value wire.Value) error {
	return c.schema.Validate(path, value)
}

func (c *funcCodec[D, E]) Encode(ctx EncodeContext, value E) (wire.Value, error) {
	return c.encode(ctx, value)
}

func (c *funcCodec[D, E]) Decode(value wire.Value) (result D, err error) {
	err = c.schema.Validate(nil, value)
	if err != nil {
		return
	}
	return c.decode(value)
}

func (c *funcCodec[D, E]) EncodeAny(ctx EncodeContext, value any) (wire.Value, error) {
	encodable, err := castEncodable[E](c.tag, value)
	if err != nil {
		return wire.Value{}, err
	}
	return c.encode(ctx, encodable)
}

func (c *funcCodec[D, E]) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}

// castEncodable converts a type-erased input to the encoder's input type.
// A nil input is the zero value when the input type is an interface type.
func castEncodable[E any](tag wire.Tag, value any) (E, error) {
	if value == nil && reflect.TypeFor[E]().Kind() == reflect.Interface {
		var zero E
		return zero, nil
	}

	encodable, ok := value.(E)
	if !ok {
		var expected E
		return expected, NewSchemaMismatchError(
			nil,
			fmt.Sprintf("%s input (%T)", tag, expected),
			fmt.Sprintf("%T", value),
		)
	}
	return encodable, nil
}

type dynamicCodec struct {
	AnyCodec
}

var _ Codec[any, any] = dynamicCodec{}

// Dynamic lifts a type-erased codec into a Codec[any, any],
// so it can be passed to the generic combinators.
func Dynamic(c AnyCodec) Codec[any, any] {
	if typed, ok := c.(Codec[any, any]); ok {
		return typed
	}
	return dynamicCodec{AnyCodec: c}
}

func (c dynamicCodec) Encode(ctx EncodeContext, value any) (wire.Value, error) {
	return c.EncodeAny(ctx, value)
}

func (c dynamicCodec) Decode(value wire.Value) (any, error) {
	return c.DecodeAny(value)
}

// Validate checks the value against the schema, starting at the root path.
func Validate(schema Schema, value wire.Value) error {
	return schema.Validate(nil, value)
}

// EncodeJSON encodes the native value and serializes the result to JSON-Cadence.
func EncodeJSON(c AnyCodec, ctx EncodeContext, value any) ([]byte, error) {
	encoded, err := c.EncodeAny(ctx, value)
	if err != nil {
		return nil, err
	}
	return wire.Encode(encoded)
}

// DecodeJSON parses JSON-Cadence and decodes the result.
func DecodeJSON(c AnyCodec, b []byte) (any, error) {
	value, err := wire.Decode(b)
	if err != nil {
		return nil, err
	}
	return c.DecodeAny(value)
}

// expectTag checks the tag of a value.
func expectTag(path ValuePath, value wire.Value, tag wire.Tag) error {
	if value.Type != tag {
		return NewSchemaMismatchError(
			path,
			fmt.Sprintf("`%s` value", tag),
			describeValue(value),
		)
	}
	return nil
}

// expectPayload checks the tag of a value and the Go type of its payload.
func expectPayload[T any](path ValuePath, value wire.Value, tag wire.Tag) (payload T, err error) {
	err = expectTag(path, value, tag)
	if err != nil {
		return
	}

	payload, ok := value.Value.(T)
	if !ok {
		err = NewSchemaMismatchError(
			path.payloadPath(),
			fmt.Sprintf("%T payload", payload),
			describePayload(value.Value),
		)
	}
	return
}

// payloadSchema is the schema of values with a payload of type T,
// optionally further constrained by check.
func payloadSchema[T any](tag wire.Tag, check func(path ValuePath, payload T) error) Schema {
	return SchemaFunc(func(path ValuePath, value wire.Value) error {
		payload, err := expectPayload[T](path, value, tag)
		if err != nil {
			return err
		}
		if check == nil {
			return nil
		}
		return check(path.payloadPath(), payload)
	})
}

// decodePayload decodes a validated value by projecting its payload.
func decodePayload[T any](value wire.Value) (T, error) {
	return value.Value.(T), nil
}
