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
	"github.com/onflow/cadence-codec/wire"
)

type optionalCodec[D, E any] struct {
	inner Codec[D, E]
}

var _ Codec[Option[any], Option[any]] = optionalCodec[any, any]{}

// Optional returns a codec for values which may be absent.
//
// Optionals nest: the inner codec may itself be an Optional.
// When the inner value decodes to an absent value, the outer value is absent too,
// so `{"type":"Optional","value":{"type":"Optional","value":null}}`
// and `{"type":"Optional","value":null}` decode to the same value.
func Optional[D, E any](inner Codec[D, E]) Codec[Option[D], Option[E]] {
	return optionalCodec[D, E]{
		inner: inner,
	}
}

func (c optionalCodec[D, E]) Tag() wire.Tag {
	return wire.TagOptional
}

func (c optionalCodec[D, E]) Validate(path ValuePath, value wire.Value) error {
	err := expectTag(path, value, wire.TagOptional)
	if err != nil {
		return err
	}

	if value.Value == nil {
		return nil
	}

	innerValue, err := expectPayload[wire.Value](path, value, wire.TagOptional)
	if err != nil {
		return err
	}

	return c.inner.Validate(path.payloadPath(), innerValue)
}

func (c optionalCodec[D, E]) Encode(ctx EncodeContext, value Option[E]) (wire.Value, error) {
	innerValue, ok := value.Get()
	if !ok {
		return wire.NewOptional(nil), nil
	}

	encoded, err := c.inner.Encode(ctx, innerValue)
	if err != nil {
		return wire.Value{}, atPath(err, ValuePath{}.payloadPath())
	}

	return wire.NewOptional(&encoded), nil
}

func (c optionalCodec[D, E]) Decode(value wire.Value) (result Option[D], err error) {
	err = c.Validate(nil, value)
	if err != nil {
		return
	}

	if value.Value == nil {
		return None[D](), nil
	}

	decoded, err := c.inner.Decode(value.Value.(wire.Value))
	if err != nil {
		return result, atPath(err, ValuePath{}.payloadPath())
	}

	if option, ok := any(decoded).(anyOption); ok && option.IsNone() {
		return None[D](), nil
	}

	return Some(decoded), nil
}

// EncodeAny accepts nil (absent), any Option, or a bare value of the inner codec.
func (c optionalCodec[D, E]) EncodeAny(ctx EncodeContext, value any) (wire.Value, error) {
	switch value := value.(type) {
	case nil:
		return wire.NewOptional(nil), nil

	case Option[E]:
		return c.Encode(ctx, value)

	case anyOption:
		if value.IsNone() {
			return wire.NewOptional(nil), nil
		}
		return c.encodeSomeAny(ctx, value.anyValue())
	}

	return c.encodeSomeAny(ctx, value)
}

func (c optionalCodec[D, E]) encodeSomeAny(ctx EncodeContext, value any) (wire.Value, error) {
	encoded, err := c.inner.EncodeAny(ctx, value)
	if err != nil {
		return wire.Value{}, atPath(err, ValuePath{}.payloadPath())
	}
	return wire.NewOptional(&encoded), nil
}

func (c optionalCodec[D, E]) DecodeAny(value wire.Value) (any, error) {
	return c.Decode(value)
}
