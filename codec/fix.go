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
	"regexp"

	"github.com/onflow/cadence-codec/wire"
)

var (
	signedFixedPointPattern   = regexp.MustCompile(`^-?\d+\.\d*$`)
	unsignedFixedPointPattern = regexp.MustCompile(`^\d+\.\d*$`)
)

// Fixed-point literals are passed through as strings, without any numeric
// interpretation, so their precision is preserved exactly as written.
var (
	Fix64  = newFixedPointCodec(true)
	UFix64 = newFixedPointCodec(false)
)

func newFixedPointCodec(signed bool) Codec[string, string] {
	tag := wire.TagUFix64
	pattern := unsignedFixedPointPattern
	if signed {
		tag = wire.TagFix64
		pattern = signedFixedPointPattern
	}

	checkLiteral := func(path ValuePath, literal string) error {
		if !pattern.MatchString(literal) {
			return MalformedNumericLiteralError{
				Path:    path,
				Type:    tag,
				Literal: literal,
			}
		}
		return nil
	}

	return New[string, string](
		tag,
		func(_ EncodeContext, literal string) (wire.Value, error) {
			err := checkLiteral(ValuePath{}.payloadPath(), literal)
			if err != nil {
				return wire.Value{}, err
			}
			return wire.NewText(tag, literal), nil
		},
		payloadSchema(tag, checkLiteral),
		decodePayload[string],
	)
}
