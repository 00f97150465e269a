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

package codec_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/cadence-codec/codec"
	"github.com/onflow/cadence-codec/common"
	. "github.com/onflow/cadence-codec/test_utils/common_utils"
	"github.com/onflow/cadence-codec/wire"
)

type leafTest struct {
	name     string
	codec    codec.AnyCodec
	input    any
	expected string
	decoded  any
}

func testLeaf(t *testing.T, tests ...leafTest) {
	t.Helper()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			actual, err := codec.EncodeJSON(test.codec, codec.Background(), test.input)
			require.NoError(t, err)
			assert.JSONEq(t, test.expected, string(actual))

			decoded, err := codec.DecodeJSON(test.codec, []byte(test.expected))
			require.NoError(t, err)
			AssertEqualWithDiff(t, test.decoded, decoded)
		})
	}
}

func TestVoid(t *testing.T) {

	t.Parallel()

	testLeaf(t,
		leafTest{
			name:     "nil input",
			codec:    codec.Void,
			input:    nil,
			expected: `{"type":"Void"}`,
			decoded:  struct{}{},
		},
		leafTest{
			name:     "ignored input",
			codec:    codec.Void,
			input:    42,
			expected: `{"type":"Void"}`,
			decoded:  struct{}{},
		},
	)

	t.Run("payload", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Void.Decode(wire.Value{Type: wire.TagVoid, Value: true})
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})
}

func TestVoidNested(t *testing.T) {

	t.Parallel()

	t.Run("tuple element", func(t *testing.T) {
		t.Parallel()

		tuple := codec.Tuple(codec.Bool, codec.Void)

		encoded, err := tuple.EncodeAny(codec.Background(), []any{true, nil})
		require.NoError(t, err)
		assert.Equal(t,
			wire.NewArray(wire.NewBool(true), wire.NewVoid()),
			encoded,
		)
	})

	t.Run("composite field", func(t *testing.T) {
		t.Parallel()

		unit := codec.Struct("Unit", codec.Field("v", codec.Void))

		encoded, err := unit.Encode(codec.Background(), map[string]any{"v": nil})
		require.NoError(t, err)
		assert.Equal(t,
			wire.NewComposite(wire.TagStruct, "Unit", wire.Field{Name: "v", Value: wire.NewVoid()}),
			encoded,
		)
	})

	t.Run("nil integer rejected", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Int.EncodeAny(codec.Background(), nil)
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})
}

func TestBoolAndString(t *testing.T) {

	t.Parallel()

	testLeaf(t,
		leafTest{
			name:     "true",
			codec:    codec.Bool,
			input:    true,
			expected: `{"type":"Bool","value":true}`,
			decoded:  true,
		},
		leafTest{
			name:     "false",
			codec:    codec.Bool,
			input:    false,
			expected: `{"type":"Bool","value":false}`,
			decoded:  false,
		},
		leafTest{
			name:     "string",
			codec:    codec.String,
			input:    "FLOW ❤️",
			expected: `{"type":"String","value":"FLOW ❤️"}`,
			decoded:  "FLOW ❤️",
		},
		leafTest{
			name:     "empty string",
			codec:    codec.String,
			input:    "",
			expected: `{"type":"String","value":""}`,
			decoded:  "",
		},
	)

	t.Run("wrong input type", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Bool.EncodeAny(codec.Background(), "true")
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})

	t.Run("wrong tag", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Bool.Decode(wire.NewString("true"))
		RequireUserError(t, err)
		assert.EqualError(t, err, "schema mismatch: expected `Bool` value, got `String` value")
	})

	t.Run("wrong payload", func(t *testing.T) {
		t.Parallel()

		_, err := codec.String.Decode(wire.Value{Type: wire.TagString, Value: true})
		RequireUserError(t, err)
		assert.EqualError(t, err, "schema mismatch: expected string payload, got bool payload (at .value)")
	})
}

func TestAddress(t *testing.T) {

	t.Parallel()

	testLeaf(t,
		leafTest{
			name:     "without prefix",
			codec:    codec.Address,
			input:    "0000000102030405",
			expected: `{"type":"Address","value":"0x0000000102030405"}`,
			decoded:  "0000000102030405",
		},
		leafTest{
			name:     "with prefix",
			codec:    codec.Address,
			input:    "0x0000000102030405",
			expected: `{"type":"Address","value":"0x0000000102030405"}`,
			decoded:  "0000000102030405",
		},
	)

	t.Run("decode without prefix", func(t *testing.T) {
		t.Parallel()

		decoded, err := codec.Address.Decode(wire.NewText(wire.TagAddress, "f8d6e0586b0a20c7"))
		require.NoError(t, err)
		assert.Equal(t, "f8d6e0586b0a20c7", decoded)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Address.Encode(codec.Background(), "0xnothex")
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))

		_, err = codec.Address.Decode(wire.NewText(wire.TagAddress, "0x0x01"))
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})
}

func TestIntegers(t *testing.T) {

	t.Parallel()

	testLeaf(t,
		leafTest{
			name:     "Int from int",
			codec:    codec.Int,
			input:    -42,
			expected: `{"type":"Int","value":"-42"}`,
			decoded:  big.NewInt(-42),
		},
		leafTest{
			name:     "Int8 from string",
			codec:    codec.Int8,
			input:    "127",
			expected: `{"type":"Int8","value":"127"}`,
			decoded:  big.NewInt(127),
		},
		leafTest{
			name:     "UInt64 from uint64",
			codec:    codec.UInt64,
			input:    uint64(18446744073709551615),
			expected: `{"type":"UInt64","value":"18446744073709551615"}`,
			decoded:  new(big.Int).SetUint64(18446744073709551615),
		},
		leafTest{
			name:     "UInt32 from json.Number",
			codec:    codec.UInt32,
			input:    json.Number("7"),
			expected: `{"type":"UInt32","value":"7"}`,
			decoded:  big.NewInt(7),
		},
		leafTest{
			name:     "UInt128 from bytes",
			codec:    codec.UInt128,
			input:    []byte{0x01, 0x00},
			expected: `{"type":"UInt128","value":"256"}`,
			decoded:  big.NewInt(256),
		},
		leafTest{
			name:     "Int256 from big.Int",
			codec:    codec.Int256,
			input:    big.NewInt(-1),
			expected: `{"type":"Int256","value":"-1"}`,
			decoded:  big.NewInt(-1),
		},
		leafTest{
			name:     "UInt16 from integral float",
			codec:    codec.UInt16,
			input:    float64(65535),
			expected: `{"type":"UInt16","value":"65535"}`,
			decoded:  big.NewInt(65535),
		},
	)

	t.Run("canonical literal", func(t *testing.T) {
		t.Parallel()

		encoded, err := codec.Int.Encode(codec.Background(), "007")
		require.NoError(t, err)
		assert.Equal(t, wire.NewText(wire.TagInt, "7"), encoded)
	})

	t.Run("malformed literal", func(t *testing.T) {
		t.Parallel()

		for _, literal := range []string{"", "1.5", "0x10", "1e3", " 1", "+1"} {
			_, err := codec.Int.Encode(codec.Background(), literal)
			RequireUserError(t, err)
			assert.True(t, codec.IsMalformedNumericLiteral(err), literal)
		}
	})

	t.Run("negative unsigned", func(t *testing.T) {
		t.Parallel()

		_, err := codec.UInt8.Encode(codec.Background(), -1)
		RequireUserError(t, err)
		assert.True(t, codec.IsMalformedNumericLiteral(err))
		assert.EqualError(t, err, `malformed UInt8 literal: "-1" (at .value)`)

		_, err = codec.UInt8.Decode(wire.NewText(wire.TagUInt8, "-1"))
		RequireUserError(t, err)
		assert.True(t, codec.IsMalformedNumericLiteral(err))
	})

	t.Run("non-integral float", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Int.EncodeAny(codec.Background(), 1.5)
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})

	t.Run("wrong tag", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Int64.Decode(wire.NewText(wire.TagInt32, "1"))
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})

	t.Run("Integer", func(t *testing.T) {
		t.Parallel()

		c, err := codec.Integer(128, false)
		require.NoError(t, err)
		assert.Equal(t, wire.TagUInt128, c.Tag())

		c, err = codec.Integer(0, true)
		require.NoError(t, err)
		assert.Equal(t, wire.TagInt, c.Tag())

		_, err = codec.Integer(12, true)
		RequireUserError(t, err)
	})
}

func TestIntLike(t *testing.T) {

	t.Parallel()

	bytes, err := codec.IntLikeAsBytes("256")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00}, bytes)

	_, err = codec.IntLikeAsBytes(-1)
	RequireUserError(t, err)

	literal, err := codec.IntLikeAsString(*big.NewInt(-10))
	require.NoError(t, err)
	assert.Equal(t, "-10", literal)

	_, err = codec.IntLikeAsBigInt(struct{}{})
	RequireUserError(t, err)
	assert.True(t, codec.IsSchemaMismatch(err))
}

func TestFixedPoint(t *testing.T) {

	t.Parallel()

	testLeaf(t,
		leafTest{
			name:     "UFix64",
			codec:    codec.UFix64,
			input:    "12.34000000",
			expected: `{"type":"UFix64","value":"12.34000000"}`,
			decoded:  "12.34000000",
		},
		leafTest{
			name:     "Fix64 negative",
			codec:    codec.Fix64,
			input:    "-0.5",
			expected: `{"type":"Fix64","value":"-0.5"}`,
			decoded:  "-0.5",
		},
		leafTest{
			name:     "trailing dot",
			codec:    codec.UFix64,
			input:    "1.",
			expected: `{"type":"UFix64","value":"1."}`,
			decoded:  "1.",
		},
	)

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		for _, literal := range []string{"1", ".5", "1.2.3", "abc"} {
			_, err := codec.Fix64.Encode(codec.Background(), literal)
			RequireUserError(t, err)
			assert.True(t, codec.IsMalformedNumericLiteral(err), literal)
		}

		_, err := codec.UFix64.Decode(wire.NewText(wire.TagUFix64, "-1.0"))
		RequireUserError(t, err)
		assert.True(t, codec.IsMalformedNumericLiteral(err))
	})
}

func TestPath(t *testing.T) {

	t.Parallel()

	storagePath := codec.NewPathValue(common.PathDomainStorage, "flowTokenVault")

	testLeaf(t,
		leafTest{
			name:     "shorthand",
			codec:    codec.Path,
			input:    "/storage/flowTokenVault",
			expected: `{"type":"Path","value":{"domain":"storage","identifier":"flowTokenVault"}}`,
			decoded:  storagePath,
		},
		leafTest{
			name:     "object",
			codec:    codec.Path,
			input:    map[string]any{"domain": "public", "identifier": "receiver"},
			expected: `{"type":"Path","value":{"domain":"public","identifier":"receiver"}}`,
			decoded:  codec.NewPathValue(common.PathDomainPublic, "receiver"),
		},
		leafTest{
			name:     "path value",
			codec:    codec.StoragePath,
			input:    storagePath,
			expected: `{"type":"Path","value":{"domain":"storage","identifier":"flowTokenVault"}}`,
			decoded:  storagePath,
		},
		leafTest{
			name:     "private",
			codec:    codec.PrivatePath,
			input:    "/private/key",
			expected: `{"type":"Path","value":{"domain":"private","identifier":"key"}}`,
			decoded:  codec.NewPathValue(common.PathDomainPrivate, "key"),
		},
	)

	t.Run("String", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "/storage/flowTokenVault", storagePath.String())
	})

	t.Run("invalid shorthand", func(t *testing.T) {
		t.Parallel()

		for _, shorthand := range []string{"storage/a", "/temp/a", "/storage/", "/storage/a/b"} {
			_, err := codec.Path.EncodeAny(codec.Background(), shorthand)
			RequireUserError(t, err)
			assert.True(t, codec.IsSchemaMismatch(err), shorthand)
		}
	})

	t.Run("domain restriction", func(t *testing.T) {
		t.Parallel()

		_, err := codec.PublicPath.EncodeAny(codec.Background(), "/storage/a")
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))

		_, err = codec.StoragePath.Decode(wire.NewPath("public", "a"))
		RequireUserError(t, err)
		assert.EqualError(t, err, "schema mismatch: expected path domain `storage`, got `public` (at .value.domain)")

		_, err = codec.Path.Decode(wire.NewPath("temp", "a"))
		RequireUserError(t, err)
		assert.True(t, codec.IsSchemaMismatch(err))
	})
}

func TestLeafByName(t *testing.T) {

	t.Parallel()

	for _, name := range codec.LeafNames() {
		c, ok := codec.LeafByName(name)
		require.True(t, ok, name)
		require.NotNil(t, c, name)
	}

	c, ok := codec.LeafByName("UFix64")
	require.True(t, ok)
	assert.Equal(t, wire.TagUFix64, c.Tag())

	c, ok = codec.LeafByName("PublicPath")
	require.True(t, ok)
	assert.Equal(t, wire.TagPath, c.Tag())

	_, ok = codec.LeafByName("Word8")
	assert.False(t, ok)
}
