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

package descriptor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-codec/codec"
	. "github.com/onflow/cadence-codec/test_utils/common_utils"
	"github.com/onflow/cadence-codec/wire"
)

func TestCodec(t *testing.T) {

	t.Parallel()

	t.Run("dictionary of optional arrays", func(t *testing.T) {
		t.Parallel()

		c, err := Codec("{String: [UInt64]?}")
		require.NoError(t, err)
		assert.Equal(t, wire.TagDictionary, c.Tag())

		encoded, err := codec.EncodeJSON(c, codec.Background(), map[string]any{
			"a": []any{1, 2},
			"b": nil,
		})
		require.NoError(t, err)
		assert.JSONEq(t,
			`{
              "type": "Dictionary",
              "value": [
                {
                  "key": {"type": "String", "value": "a"},
                  "value": {
                    "type": "Optional",
                    "value": {
                      "type": "Array",
                      "value": [
                        {"type": "UInt64", "value": "1"},
                        {"type": "UInt64", "value": "2"}
                      ]
                    }
                  }
                },
                {
                  "key": {"type": "String", "value": "b"},
                  "value": {"type": "Optional", "value": null}
                }
              ]
            }`,
			string(encoded),
		)

		decoded, err := codec.DecodeJSON(c, encoded)
		require.NoError(t, err)
		AssertEqualWithDiff(t,
			map[any]any{
				"a": codec.Some[any]([]any{big.NewInt(1), big.NewInt(2)}),
				"b": codec.None[any](),
			},
			decoded,
		)
	})

	t.Run("tuple", func(t *testing.T) {
		t.Parallel()

		c, err := Codec("(Bool, StoragePath)")
		require.NoError(t, err)

		_, err = c.EncodeAny(codec.Background(), []any{true, "/public/foo"})
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))

		encoded, err := c.EncodeAny(codec.Background(), []any{true, "/storage/foo"})
		require.NoError(t, err)
		assert.Equal(t, wire.TagArray, encoded.Type)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := Codec("[Word64]")
		RequireUserError(t, err)

		var unknownTypeErr *UnknownTypeError
		require.ErrorAs(t, err, &unknownTypeErr)
		assert.EqualError(t, err, "unknown type `Word64` at offset 1")
	})

	t.Run("non-leaf dictionary key", func(t *testing.T) {
		t.Parallel()

		_, err := Codec("{[Int]: Bool}")
		RequireUserError(t, err)
		assert.EqualError(t, err, "dictionary key type `[Int]` at offset 1 is not a leaf type")
	})
}

const tokenDescriptor = `
composites:
  - kind: event
    id: A.0000000000000001.Token.Deposited
    alias: Deposited
    fields:
      - name: amount
        type: UFix64
      - name: to
        type: Address?
      - name: vault
        type: Vault
  - kind: resource
    id: A.0000000000000001.Token.Vault
    alias: Vault
    fields:
      - name: balance
        type: UFix64
type: "[Deposited]"
`

func TestLoad(t *testing.T) {

	t.Parallel()

	c, err := Load([]byte(tokenDescriptor))
	require.NoError(t, err)

	data := []byte(`{
      "type": "Array",
      "value": [
        {
          "type": "Event",
          "value": {
            "id": "A.0000000000000001.Token.Deposited",
            "fields": [
              {"name": "amount", "value": {"type": "UFix64", "value": "10.00000000"}},
              {"name": "to", "value": {"type": "Optional", "value": {"type": "Address", "value": "0x0000000000000002"}}},
              {
                "name": "vault",
                "value": {
                  "type": "Resource",
                  "value": {
                    "id": "A.0000000000000001.Token.Vault",
                    "fields": [
                      {"name": "balance", "value": {"type": "UFix64", "value": "10.00000000"}}
                    ]
                  }
                }
              }
            ]
          }
        }
      ]
    }`)

	decoded, err := codec.DecodeJSON(c, data)
	require.NoError(t, err)

	AssertEqualWithDiff(t,
		[]any{
			codec.Composite{
				Identifier: "A.0000000000000001.Token.Deposited",
				Fields: map[string]any{
					"amount": "10.00000000",
					"to":     codec.Some[any]("0000000000000002"),
					"vault": codec.Composite{
						Identifier: "A.0000000000000001.Token.Vault",
						Fields: map[string]any{
							"balance": "10.00000000",
						},
					},
				},
			},
		},
		decoded,
	)

	encoded, err := codec.EncodeJSON(c, codec.Background(), decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(encoded))
}

func TestNew(t *testing.T) {

	t.Parallel()

	t.Run("lookup by alias and identifier", func(t *testing.T) {
		t.Parallel()

		file, err := ParseYAML([]byte(tokenDescriptor))
		require.NoError(t, err)

		descriptor, err := New(file.Composites...)
		require.NoError(t, err)

		byAlias, ok := descriptor.Composite("Vault")
		require.True(t, ok)

		byIdentifier, ok := descriptor.Composite("A.0000000000000001.Token.Vault")
		require.True(t, ok)

		assert.Same(t, byAlias, byIdentifier)
		assert.Equal(t, wire.TagResource, byAlias.Tag())

		deposited, ok := descriptor.Composite("Deposited")
		require.True(t, ok)
		assert.Equal(t, wire.TagEvent, deposited.Tag())
		assert.Equal(t, []string{"amount", "to", "vault"}, deposited.FieldNames())

		vaultField, ok := deposited.Field("vault")
		require.True(t, ok)
		assert.Same(t, byAlias, vaultField)

		c, err := descriptor.Codec("{String: Vault}")
		require.NoError(t, err)
		assert.Equal(t, wire.TagDictionary, c.Tag())
	})

	t.Run("default kind", func(t *testing.T) {
		t.Parallel()

		descriptor, err := New(CompositeDeclaration{Identifier: "Foo"})
		require.NoError(t, err)

		foo, ok := descriptor.Composite("Foo")
		require.True(t, ok)
		assert.Equal(t, wire.TagStruct, foo.Tag())
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{Kind: "interface", Identifier: "Foo"})
		RequireUserError(t, err)
		assert.EqualError(t, err, "invalid composite kind: interface")
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()

		_, err := New(
			CompositeDeclaration{
				Identifier: "A",
				Fields:     []FieldDeclaration{{Name: "b", Type: "B?"}},
			},
			CompositeDeclaration{
				Identifier: "B",
				Fields:     []FieldDeclaration{{Name: "a", Type: "[A]"}},
			},
		)
		RequireUserError(t, err)

		var cycleErr *CyclicDeclarationError
		require.ErrorAs(t, err, &cycleErr)
		assert.EqualError(t, err, "cyclic composite declaration: `A` -> `B` -> `A`")
	})

	t.Run("self reference", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{
			Identifier: "Node",
			Fields:     []FieldDeclaration{{Name: "next", Type: "Node?"}},
		})
		RequireUserError(t, err)
		assert.EqualError(t, err, "cyclic composite declaration: `Node` -> `Node`")
	})

	t.Run("unknown field type", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{
			Identifier: "Foo",
			Fields:     []FieldDeclaration{{Name: "bar", Type: "Bar"}},
		})
		RequireUserError(t, err)

		var unknownTypeErr *UnknownTypeError
		require.ErrorAs(t, err, &unknownTypeErr)
		assert.Equal(t, "Bar", unknownTypeErr.Identifier)
	})

	t.Run("field syntax error", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{
			Identifier: "Foo",
			Fields:     []FieldDeclaration{{Name: "bar", Type: "[Int"}},
		})
		RequireUserError(t, err)

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 4, syntaxErr.Offset)
	})

	t.Run("duplicate declaration", func(t *testing.T) {
		t.Parallel()

		_, err := New(
			CompositeDeclaration{Identifier: "A.0000000000000001.Foo", Alias: "Foo"},
			CompositeDeclaration{Identifier: "Foo"},
		)
		RequireUserError(t, err)
		assert.EqualError(t, err, "duplicate composite declaration `Foo`")
	})

	t.Run("shadowing leaf", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{Identifier: "String"})
		RequireUserError(t, err)
	})

	t.Run("duplicate field", func(t *testing.T) {
		t.Parallel()

		_, err := New(CompositeDeclaration{
			Identifier: "Foo",
			Fields: []FieldDeclaration{
				{Name: "a", Type: "Int"},
				{Name: "a", Type: "Bool"},
			},
		})
		RequireUserError(t, err)
		assert.EqualError(t, err, "duplicate field `a` in `Foo`")
	})
}

func TestParseYAML(t *testing.T) {

	t.Parallel()

	t.Run("unknown property", func(t *testing.T) {
		t.Parallel()

		_, err := ParseYAML([]byte("composites: []\nkinds: 1\n"))
		RequireUserError(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := ParseYAML([]byte("composites: [\n"))
		RequireUserError(t, err)
	})

	t.Run("missing type", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("composites: []\n"))
		RequireUserError(t, err)
		assert.EqualError(t, err, "missing `type` in descriptor")
	})
}
