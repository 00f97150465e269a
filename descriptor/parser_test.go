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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/onflow/cadence-codec/test_utils/common_utils"
)

func TestParseType(t *testing.T) {

	t.Parallel()

	tests := []struct {
		input    string
		expected Type
	}{
		{
			input: "UInt64",
			expected: &NominalType{
				Identifier: "UInt64",
			},
		},
		{
			input: " Bool?? ",
			expected: &OptionalType{
				Type: &OptionalType{
					Type: &NominalType{
						Identifier: "Bool",
						Offset:     1,
					},
				},
			},
		},
		{
			input: "[String]",
			expected: &ArrayType{
				Type: &NominalType{
					Identifier: "String",
					Offset:     1,
				},
			},
		},
		{
			input: "{Address: [UFix64?]}",
			expected: &DictionaryType{
				KeyType: &NominalType{
					Identifier: "Address",
					Offset:     1,
				},
				ValueType: &ArrayType{
					Type: &OptionalType{
						Type: &NominalType{
							Identifier: "UFix64",
							Offset:     11,
						},
					},
					Offset: 10,
				},
			},
		},
		{
			input: "(Bool, A.0000000000000001.Token.Vault,)",
			expected: &TupleType{
				Types: []Type{
					&NominalType{
						Identifier: "Bool",
						Offset:     1,
					},
					&NominalType{
						Identifier: "A.0000000000000001.Token.Vault",
						Offset:     7,
					},
				},
			},
		},
		{
			input: "()",
			expected: &TupleType{},
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			actual, err := ParseType(test.input)
			require.NoError(t, err)
			AssertEqualWithDiff(t, test.expected, actual)
		})
	}
}

func TestParseTypeString(t *testing.T) {

	t.Parallel()

	for _, input := range []string{
		"UInt64",
		"Bool??",
		"[String]",
		"{Address: [UFix64?]}",
		"(Bool, Int, [Path])?",
	} {
		parsed, err := ParseType(input)
		require.NoError(t, err)
		assert.Equal(t, input, parsed.String())
	}
}

func TestParseTypeErrors(t *testing.T) {

	t.Parallel()

	tests := map[string]string{
		"":           "syntax error at offset 0: expected type, got end of input",
		"[Int":       "syntax error at offset 4: expected `]`, got end of input",
		"{Int Bool}": "syntax error at offset 5: expected `:`, got identifier `Bool`",
		"Int Bool":   "syntax error at offset 4: expected end of input, got identifier `Bool`",
		"?":          "syntax error at offset 0: expected type, got `?`",
		"Int & Bool": "syntax error at offset 4: unexpected character `&`",
		"(Int Bool)": "syntax error at offset 5: expected `)`, got identifier `Bool`",
	}

	for input, message := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := ParseType(input)
			RequireUserError(t, err)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.EqualError(t, err, message)
		})
	}
}
