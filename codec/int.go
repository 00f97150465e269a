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
	"math/big"
	"strconv"

	"github.com/onflow/cadence-codec/errors"
	"github.com/onflow/cadence-codec/wire"
)

// IntegerCodec encodes integers. The decoded form is always a *big.Int;
// range checks for fixed-width types are left to the Cadence runtime.
type IntegerCodec = Codec[*big.Int, IntLike]

var (
	Int    = newIntegerCodec(0, true)
	Int8   = newIntegerCodec(8, true)
	Int16  = newIntegerCodec(16, true)
	Int32  = newIntegerCodec(32, true)
	Int64  = newIntegerCodec(64, true)
	Int128 = newIntegerCodec(128, true)
	Int256 = newIntegerCodec(256, true)

	UInt    = newIntegerCodec(0, false)
	UInt8   = newIntegerCodec(8, false)
	UInt16  = newIntegerCodec(16, false)
	UInt32  = newIntegerCodec(32, false)
	UInt64  = newIntegerCodec(64, false)
	UInt128 = newIntegerCodec(128, false)
	UInt256 = newIntegerCodec(256, false)
)

var integerCodecs = map[wire.Tag]IntegerCodec{}

func init() {
	for _, c := range []IntegerCodec{
		Int, Int8, Int16, Int32, Int64, Int128, Int256,
		UInt, UInt8, UInt16, UInt32, UInt64, UInt128, UInt256,
	} {
		integerCodecs[c.Tag()] = c
	}
}

// Integer returns the integer codec of the given bit width and signedness.
// A width of 0 denotes the arbitrary-precision Int and UInt types.
func Integer(bits int, signed bool) (IntegerCodec, error) {
	c, ok := integerCodecs[integerTag(bits, signed)]
	if !ok {
		return nil, errors.NewDefaultUserError("invalid integer width: %d", bits)
	}
	return c, nil
}

func integerTag(bits int, signed bool) wire.Tag {
	prefix := ""
	if !signed {
		prefix = "U"
	}
	suffix := ""
	if bits != 0 {
		suffix = strconv.Itoa(bits)
	}
	return wire.Tag(fmt.Sprintf("%sInt%s", prefix, suffix))
}

func newIntegerCodec(bits int, signed bool) IntegerCodec {
	tag := integerTag(bits, signed)

	pattern := unsignedIntegerPattern
	if signed {
		pattern = signedIntegerPattern
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

	return New[*big.Int, IntLike](
		tag,
		func(_ EncodeContext, value IntLike) (wire.Value, error) {
			literal, err := IntLikeAsString(value)
			if err != nil {
				if literalErr, ok := err.(MalformedNumericLiteralError); ok {
					literalErr.Type = tag
					err = literalErr
				}
				return wire.Value{}, err
			}

			err = checkLiteral(ValuePath{}.payloadPath(), literal)
			if err != nil {
				return wire.Value{}, err
			}

			return wire.NewText(tag, literal), nil
		},
		payloadSchema(tag, checkLiteral),
		func(value wire.Value) (*big.Int, error) {
			literal := value.Value.(string)
			bigInt, ok := new(big.Int).SetString(literal, 10)
			if !ok {
				return nil, MalformedNumericLiteralError{
					Type:    tag,
					Literal: literal,
				}
			}
			return bigInt, nil
		},
	)
}
