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
	"sort"

	"github.com/onflow/cadence-codec/common/orderedmap"
	"github.com/onflow/cadence-codec/errors"
	"github.com/onflow/cadence-codec/wire"
)

// Composite is a decoded composite value: the identifier of the type
// which produced it, and the decoded values of its fields.
type Composite struct {
	Identifier string
	Fields     map[string]any
}

// Field returns the decoded value of the field with the given name.
func (c Composite) Field(name string) (any, bool) {
	value, ok := c.Fields[name]
	return value, ok
}

// FieldAs returns the decoded value of the field with the given name,
// if it is present and has type T.
func FieldAs[T any](c Composite, name string) (result T, ok bool) {
	value, present := c.Fields[name]
	if !present {
		return
	}
	result, ok = value.(T)
	return
}

// CompositeKey is the comparable form of a composite value decoded as a dictionary key,
// e.g. an enum case. Value is the JSON-Cadence encoding of the composite.
type CompositeKey struct {
	Identifier string
	Value      string
}

// Identifier returns the identifier of the composite type which produced the given
// decoded value, or false if the value is not a decoded composite.
func Identifier(value any) (string, bool) {
	switch value := value.(type) {
	case Composite:
		return value.Identifier, true
	case *Composite:
		if value == nil {
			return "", false
		}
		return value.Identifier, true
	case CompositeKey:
		return value.Identifier, true
	}
	return "", false
}

// FieldCodec declares a field of a composite codec.
type FieldCodec struct {
	Name  string
	Codec AnyCodec
}

func Field(name string, codec AnyCodec) FieldCodec {
	return FieldCodec{
		Name:  name,
		Codec: codec,
	}
}

// CompositeCodec encodes values of one composite type.
// The wire identifier must match the codec's identifier exactly.
//
// Use Dynamic to pass a composite codec to the generic combinators,
// e.g. Optional(Dynamic(c)).
type CompositeCodec struct {
	kind       wire.Tag
	identifier string
	tag        CompositeTag
	fields     *orderedmap.OrderedMap[string, AnyCodec]
}

var _ Codec[Composite, map[string]any] = &CompositeCodec{}

func Struct(identifier string, fields ...FieldCodec) *CompositeCodec {
	return NewCompositeCodec(wire.TagStruct, identifier, fields...)
}

func Resource(identifier string, fields ...FieldCodec) *CompositeCodec {
	return NewCompositeCodec(wire.TagResource, identifier, fields...)
}

func Event(identifier string, fields ...FieldCodec) *CompositeCodec {
	return NewCompositeCodec(wire.TagEvent, identifier, fields...)
}

func Contract(identifier string, fields ...FieldCodec) *CompositeCodec {
	return NewCompositeCodec(wire.TagContract, identifier, fields...)
}

func Enum(identifier string, fields ...FieldCodec) *CompositeCodec {
	return NewCompositeCodec(wire.TagEnum, identifier, fields...)
}

// NewCompositeCodec returns a codec for the composite type with the given kind and identifier.
// Fields are encoded in declaration order.
//
// NewCompositeCodec panics if the kind is not a composite kind,
// or if a field is declared more than once.
func NewCompositeCodec(kind wire.Tag, identifier string, fields ...FieldCodec) *CompositeCodec {
	if !kind.IsComposite() {
		panic(errors.NewUnexpectedError("invalid composite kind: %s", kind))
	}

	declaredFields := orderedmap.New[orderedmap.OrderedMap[string, AnyCodec]](len(fields))
	for _, field := range fields {
		if field.Codec == nil {
			panic(errors.NewUnexpectedError("missing codec for field `%s` of `%s`", field.Name, identifier))
		}
		if _, present := declaredFields.Set(field.Name, field.Codec); present {
			panic(errors.NewUnexpectedError("duplicate field `%s` in `%s`", field.Name, identifier))
		}
	}

	return &CompositeCodec{
		kind:       kind,
		identifier: identifier,
		tag:        ParseCompositeTag(identifier),
		fields:     declaredFields,
	}
}

func (c *CompositeCodec) Tag() wire.Tag {
	return c.kind
}

func (c *CompositeCodec) Identifier() string {
	return c.identifier
}

func (c *CompositeCodec) CompositeTag() CompositeTag {
	return c.tag
}

// FieldNames returns the names of the declared fields, in declaration order.
func (c *CompositeCodec) FieldNames() []string {
	return c.fields.Keys()
}

// Field returns the codec of the declared field with the given name.
func (c *CompositeCodec) Field(name string) (AnyCodec, bool) {
	return c.fields.Get(name)
}

func (c *CompositeCodec) unknownField(path ValuePath, name string) error {
	return UnknownFieldError{
		Path:       path,
		Identifier: c.identifier,
		Name:       name,
		Suggestion: closestFieldName(name, c.fields.Keys()),
	}
}

func (c *CompositeCodec) missingField(path ValuePath, name string) error {
	return MissingFieldError{
		Path:       path,
		Identifier: c.identifier,
		Name:       name,
	}
}

func (c *CompositeCodec) Validate(path ValuePath, value wire.Value) error {
	composite, err := expectPayload[wire.Composite](path, value, c.kind)
	if err != nil {
		return err
	}

	payloadPath := path.payloadPath()

	if composite.ID != c.identifier {
		return NewSchemaMismatchError(
			payloadPath.Property("id"),
			fmt.Sprintf("identifier `%s`", c.identifier),
			fmt.Sprintf("identifier `%s`", composite.ID),
		)
	}

	fieldsPath := payloadPath.Property("fields")

	seen := make(map[string]struct{}, len(composite.Fields))

	for i, field := range composite.Fields {
		fieldPath := fieldsPath.Index(i)

		if _, ok := seen[field.Name]; ok {
			return NewSchemaMismatchError(
				fieldPath.Property("name"),
				"unique field names",
				fmt.Sprintf("duplicate field `%s`", field.Name),
			)
		}
		seen[field.Name] = struct{}{}

		fieldCodec, ok := c.fields.Get(field.Name)
		if !ok {
			return c.unknownField(fieldPath.Property("name"), field.Name)
		}

		err = fieldCodec.Validate(fieldPath.Property("value"), field.Value)
		if err != nil {
			return err
		}
	}

	if len(seen) != c.fields.Len() {
		for _, name := range c.fields.Keys() {
			if _, ok := seen[name]; !ok {
				return c.missingField(fieldsPath, name)
			}
		}
	}

	return nil
}

// Encode encodes the fields in declaration order.
// The codec's own identifier is always emitted, even if the context has a resolver.
func (c *CompositeCodec) Encode(ctx EncodeContext, values map[string]any) (wire.Value, error) {
	fieldsPath := ValuePath{}.payloadPath().Property("fields")

	unknownNames := make([]string, 0)
	for name := range values {
		if !c.fields.Contains(name) {
			unknownNames = append(unknownNames, name)
		}
	}
	if len(unknownNames) > 0 {
		sort.Strings(unknownNames)
		return wire.Value{}, c.unknownField(fieldsPath, unknownNames[0])
	}

	fields := make([]wire.Field, 0, c.fields.Len())

	err := c.fields.ForeachWithError(func(name string, fieldCodec AnyCodec) error {
		fieldPath := fieldsPath.Index(len(fields))

		value, ok := values[name]
		if !ok {
			return c.missingField(fieldsPath, name)
		}

		encoded, err := fieldCodec.EncodeAny(ctx, value)
		if err != nil {
			return atPath(err, fieldPath.Property("value"))
		}

		fields = append(fields, wire.Field{
			Name:  name,
			Value: encoded,
		})
		return nil
	})
	if err != nil {
		return wire.Value{}, err
	}

	return wire.NewComposite(c.kind, c.identifier, fields...), nil
}

func (c *CompositeCodec) Decode(value wire.Value) (Composite, error) {
	err := c.Validate(nil, value)
	if err != nil {
		return Composite{}, err
	}

	composite := value.Value.(wire.Composite)
	fieldsPath := ValuePath{}.payloadPath().Property("fields")

	decodedFields := make(map[string]any, len(composite.Fields))

	for i, field := range composite.Fields {
		fieldCodec, _ := c.fields.Get(field.Name)

		decodedFields[field.Name], err = fieldCodec.DecodeAny(field.Value)
		if err != nil {
			return Composite{}, atPath(err, fieldsPath.Index(i).Property("value"))
		}
	}

	return Composite{
		Identifier: composite.ID,
		Fields:     decodedFields,
	}, nil
}

// EncodeAny accepts a map[string]any, a decoded Composite or CompositeKey of this codec's type,
// or any other map with string keys.
func (c *CompositeCodec) EncodeAny(ctx EncodeContext, value any) (wire.Value, error) {
	switch value := value.(type) {
	case map[string]any:
		return c.Encode(ctx, value)

	case Composite:
		return c.encodeComposite(ctx, value)

	case *Composite:
		if value != nil {
			return c.encodeComposite(ctx, *value)
		}

	case CompositeKey:
		return c.encodeCompositeKey(ctx, value)
	}

	reflectValue := reflect.ValueOf(value)
	if reflectValue.Kind() == reflect.Map && reflectValue.Type().Key().Kind() == reflect.String {
		values := make(map[string]any, reflectValue.Len())
		iterator := reflectValue.MapRange()
		for iterator.Next() {
			values[iterator.Key().String()] = iterator.Value().Interface()
		}
		return c.Encode(ctx, values)
	}

	return wire.Value{}, NewSchemaMismatchError(
		nil,
		fmt.Sprintf("%s input (map with string keys)", c.kind),
		fmt.Sprintf("%T", value),
	)
}

func (c *CompositeCodec) encodeComposite(ctx EncodeContext, value Composite) (wire.Value, error) {
	if value.Identifier != c.identifier {
		return wire.Value{}, NewSchemaMismatchError(
			ValuePath{}.payloadPath().Property("id"),
			fmt.Sprintf("identifier `%s`", c.identifier),
			fmt.Sprintf("identifier `%s`", value.Identifier),
		)
	}
	return c.Encode(ctx, value.Fields)
}

func (c *CompositeCodec) encodeCompositeKey(ctx EncodeContext, key CompositeKey) (wire.Value, error) {
	value, err := wire.Decode([]byte(key.Value))
	if err != nil {
		return wire.Value{}, err
	}

	composite, err := c.Decode(value)
	if err != nil {
		return wire.Value{}, err
	}

	return c.encodeComposite(ctx, composite)
}

func (c *CompositeCodec) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}
