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

// Package descriptor builds codecs at run time from type expressions,
// e.g. `{String: [UInt64?]}`, and from YAML descriptor files declaring composite types.
package descriptor

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/onflow/cadence-codec/codec"
	"github.com/onflow/cadence-codec/errors"
	"github.com/onflow/cadence-codec/wire"
)

// File is the content of a descriptor file.
//
//	composites:
//	  - kind: resource
//	    id: A.0000000000000001.Token.Vault
//	    alias: Vault
//	    fields:
//	      - name: balance
//	        type: UFix64
//	type: "[Vault?]"
type File struct {
	Composites []CompositeDeclaration `yaml:"composites"`
	Type       string                 `yaml:"type"`
}

// CompositeDeclaration declares a composite type.
// The kind defaults to `struct`.
type CompositeDeclaration struct {
	Kind       string             `yaml:"kind"`
	Identifier string             `yaml:"id"`
	Alias      string             `yaml:"alias"`
	Fields     []FieldDeclaration `yaml:"fields"`
}

type FieldDeclaration struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseYAML parses a descriptor file. Unknown properties are rejected.
func ParseYAML(data []byte) (*File, error) {
	var file File
	err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict())
	if err != nil {
		return nil, errors.NewDefaultUserError("failed to parse YAML: %w", err)
	}
	return &file, nil
}

// Load parses a descriptor file and returns the codec for its `type` expression.
func Load(data []byte) (codec.AnyCodec, error) {
	file, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(file.Type) == "" {
		return nil, errors.NewDefaultUserError("missing `type` in descriptor")
	}

	descriptor, err := New(file.Composites...)
	if err != nil {
		return nil, err
	}

	return descriptor.Codec(file.Type)
}

// Descriptor resolves type expressions against a set of composite declarations.
// Composites are referred to by alias, or by identifier.
type Descriptor struct {
	composites map[string]*codec.CompositeCodec
}

// New builds the codecs of the given composite declarations.
// Declarations may refer to each other in any order, but not cyclically.
func New(declarations ...CompositeDeclaration) (*Descriptor, error) {
	b := &builder{
		declarations: map[string]*compositeDeclaration{},
		building:     map[*compositeDeclaration]bool{},
	}

	for i := range declarations {
		err := b.declare(declarations[i])
		if err != nil {
			return nil, err
		}
	}

	for _, declaration := range b.order {
		_, err := b.build(declaration)
		if err != nil {
			return nil, err
		}
	}

	composites := make(map[string]*codec.CompositeCodec, len(b.declarations))
	for name, declaration := range b.declarations {
		composites[name] = declaration.codec
	}

	return &Descriptor{
		composites: composites,
	}, nil
}

// Composite returns the codec of the composite with the given alias or identifier.
func (d *Descriptor) Composite(name string) (*codec.CompositeCodec, bool) {
	compositeCodec, ok := d.composites[name]
	return compositeCodec, ok
}

// Codec parses the type expression and returns its codec.
func (d *Descriptor) Codec(expression string) (codec.AnyCodec, error) {
	t, err := ParseType(expression)
	if err != nil {
		return nil, err
	}
	return d.CodecOf(t)
}

// CodecOf returns the codec of a parsed type expression.
func (d *Descriptor) CodecOf(t Type) (codec.AnyCodec, error) {
	return compile(t, func(nominalType *NominalType) (codec.AnyCodec, error) {
		compositeCodec, ok := d.composites[nominalType.Identifier]
		if !ok {
			return nil, &UnknownTypeError{
				Identifier: nominalType.Identifier,
				Offset:     nominalType.Offset,
			}
		}
		return compositeCodec, nil
	})
}

// Codec parses the type expression and returns its codec.
// Only leaf types may be referenced.
func Codec(expression string) (codec.AnyCodec, error) {
	return (&Descriptor{}).Codec(expression)
}

type compositeLookup func(nominalType *NominalType) (codec.AnyCodec, error)

func compile(t Type, lookupComposite compositeLookup) (codec.AnyCodec, error) {
	switch t := t.(type) {
	case *NominalType:
		if leaf, ok := codec.LeafByName(t.Identifier); ok {
			return leaf, nil
		}
		return lookupComposite(t)

	case *OptionalType:
		inner, err := compile(t.Type, lookupComposite)
		if err != nil {
			return nil, err
		}
		return codec.Optional(codec.Dynamic(inner)), nil

	case *ArrayType:
		element, err := compile(t.Type, lookupComposite)
		if err != nil {
			return nil, err
		}
		return codec.Array(codec.Dynamic(element)), nil

	case *DictionaryType:
		// decoded keys are used as Go map keys, so they must be comparable
		keyType, ok := t.KeyType.(*NominalType)
		if !ok {
			return nil, errors.NewDefaultUserError(
				"dictionary key type `%s` at offset %d is not a leaf type",
				t.KeyType,
				t.KeyType.StartOffset(),
			)
		}
		key, ok := codec.LeafByName(keyType.Identifier)
		if !ok {
			return nil, errors.NewDefaultUserError(
				"dictionary key type `%s` at offset %d is not a leaf type",
				keyType,
				keyType.Offset,
			)
		}

		value, err := compile(t.ValueType, lookupComposite)
		if err != nil {
			return nil, err
		}
		return codec.Dictionary(codec.Dynamic(key), codec.Dynamic(value)), nil

	case *TupleType:
		elements := make([]codec.AnyCodec, len(t.Types))
		for i, elementType := range t.Types {
			element, err := compile(elementType, lookupComposite)
			if err != nil {
				return nil, err
			}
			elements[i] = element
		}
		return codec.Tuple(elements...), nil
	}

	panic(errors.NewUnreachableError())
}

type compositeDeclaration struct {
	CompositeDeclaration
	kind       wire.Tag
	fieldTypes []Type
	codec      *codec.CompositeCodec
}

type builder struct {
	// declarations by alias and identifier
	declarations map[string]*compositeDeclaration
	// order is the declaration order
	order []*compositeDeclaration
	// building holds the declarations currently being built
	building map[*compositeDeclaration]bool
	// stack is the chain of declarations currently being built
	stack []*compositeDeclaration
}

func (b *builder) declare(declaration CompositeDeclaration) error {
	if declaration.Identifier == "" {
		return errors.NewDefaultUserError("missing identifier of composite declaration")
	}

	kind, err := parseCompositeKind(declaration.Kind)
	if err != nil {
		return err
	}

	fieldTypes := make([]Type, len(declaration.Fields))
	for i, field := range declaration.Fields {
		fieldTypes[i], err = ParseType(field.Type)
		if err != nil {
			return errors.NewDefaultUserError(
				"invalid type of field `%s` in `%s`: %w",
				field.Name,
				declaration.Identifier,
				err,
			)
		}
	}

	compositeDecl := &compositeDeclaration{
		CompositeDeclaration: declaration,
		kind:                 kind,
		fieldTypes:           fieldTypes,
	}

	names := []string{declaration.Identifier}
	if declaration.Alias != "" && declaration.Alias != declaration.Identifier {
		names = append(names, declaration.Alias)
	}

	for _, name := range names {
		if _, ok := codec.LeafByName(name); ok {
			return errors.NewDefaultUserError("composite name `%s` shadows a leaf type", name)
		}
		if _, ok := b.declarations[name]; ok {
			return errors.NewDefaultUserError("duplicate composite declaration `%s`", name)
		}
		b.declarations[name] = compositeDecl
	}

	b.order = append(b.order, compositeDecl)

	return nil
}

func (b *builder) build(declaration *compositeDeclaration) (*codec.CompositeCodec, error) {
	if declaration.codec != nil {
		return declaration.codec, nil
	}

	if b.building[declaration] {
		return nil, b.cycleError(declaration)
	}

	b.building[declaration] = true
	b.stack = append(b.stack, declaration)
	defer func() {
		delete(b.building, declaration)
		b.stack = b.stack[:len(b.stack)-1]
	}()

	fields := make([]codec.FieldCodec, len(declaration.Fields))

	for i, field := range declaration.Fields {
		fieldCodec, err := compile(
			declaration.fieldTypes[i],
			func(nominalType *NominalType) (codec.AnyCodec, error) {
				referenced, ok := b.declarations[nominalType.Identifier]
				if !ok {
					return nil, &UnknownTypeError{
						Identifier: nominalType.Identifier,
						Offset:     nominalType.Offset,
					}
				}
				return b.build(referenced)
			},
		)
		if err != nil {
			if _, ok := err.(*CyclicDeclarationError); ok {
				return nil, err
			}
			return nil, errors.NewDefaultUserError(
				"invalid type of field `%s` in `%s`: %w",
				field.Name,
				declaration.Identifier,
				err,
			)
		}

		fields[i] = codec.Field(field.Name, fieldCodec)
	}

	compositeCodec, err := newCompositeCodec(declaration, fields)
	if err != nil {
		return nil, err
	}

	declaration.codec = compositeCodec
	return compositeCodec, nil
}

// newCompositeCodec reports duplicate fields as an error instead of panicking.
func newCompositeCodec(
	declaration *compositeDeclaration,
	fields []codec.FieldCodec,
) (*codec.CompositeCodec, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, ok := seen[field.Name]; ok {
			return nil, errors.NewDefaultUserError(
				"duplicate field `%s` in `%s`",
				field.Name,
				declaration.Identifier,
			)
		}
		seen[field.Name] = struct{}{}
	}

	return codec.NewCompositeCodec(declaration.kind, declaration.Identifier, fields...), nil
}

func (b *builder) cycleError(declaration *compositeDeclaration) error {
	var chain []string
	for i, stacked := range b.stack {
		if stacked == declaration {
			for _, cycleMember := range b.stack[i:] {
				chain = append(chain, "`"+cycleMember.Identifier+"`")
			}
			break
		}
	}
	chain = append(chain, "`"+declaration.Identifier+"`")

	return &CyclicDeclarationError{
		Chain: chain,
	}
}

// CyclicDeclarationError is reported when composite declarations refer to each other cyclically.
type CyclicDeclarationError struct {
	Chain []string
}

var _ errors.UserError = &CyclicDeclarationError{}

func (*CyclicDeclarationError) IsUserError() {}

func (e *CyclicDeclarationError) Error() string {
	return "cyclic composite declaration: " + strings.Join(e.Chain, " -> ")
}

func parseCompositeKind(kind string) (wire.Tag, error) {
	if kind == "" {
		return wire.TagStruct, nil
	}

	for _, tag := range wire.AllTags {
		if tag.IsComposite() && strings.EqualFold(kind, string(tag)) {
			return tag, nil
		}
	}

	return "", errors.NewDefaultUserError("invalid composite kind: %s", kind)
}
