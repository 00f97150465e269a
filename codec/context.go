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
	"strings"
)

// CompositeTag is the symbolic name of a composite type:
// the contract declaring it (if any) and the type's name.
type CompositeTag struct {
	Contract string
	Name     string
}

func (t CompositeTag) String() string {
	if t.Contract == "" {
		return t.Name
	}
	return t.Contract + "." + t.Name
}

// ParseCompositeTag derives the composite tag from a type identifier.
//
// Identifiers of the form `A.<address>.<Contract>.<Name>` and `S.<location>.<Name>`
// have their location stripped; the remaining qualified identifier is split
// into the contract and the type name.
func ParseCompositeTag(identifier string) CompositeTag {
	parts := strings.Split(identifier, ".")

	if len(parts) >= 3 && len(parts[0]) == 1 {
		// location prefix, e.g. `A.0000000000000001` or `S.test`
		parts = parts[2:]
	}

	switch len(parts) {
	case 0:
		return CompositeTag{}
	case 1:
		return CompositeTag{Name: parts[0]}
	default:
		return CompositeTag{
			Contract: parts[0],
			Name:     strings.Join(parts[1:], "."),
		}
	}
}

// IdentifierResolver maps a composite tag to the identifier of the type
// at run time, e.g. after a contract was deployed to a particular account.
// The second result is false if the resolver has no opinion about the tag.
type IdentifierResolver func(tag CompositeTag) (identifier string, ok bool)

// EncodeContext carries encode-time parameters through nested codecs.
// It is passed by value; the zero value is an empty context.
type EncodeContext struct {
	resolver IdentifierResolver
}

// Background returns the empty encode context.
func Background() EncodeContext {
	return EncodeContext{}
}

// WithResolver returns a copy of the context using the given identifier resolver.
func (ctx EncodeContext) WithResolver(resolver IdentifierResolver) EncodeContext {
	ctx.resolver = resolver
	return ctx
}

// Resolve asks the context's resolver for the identifier of the given tag.
func (ctx EncodeContext) Resolve(tag CompositeTag) (string, bool) {
	if ctx.resolver == nil {
		return "", false
	}
	identifier, ok := ctx.resolver(tag)
	if !ok || identifier == "" {
		return "", false
	}
	return identifier, true
}

// StaticResolver returns a resolver backed by a fixed table,
// keyed by the string form of the tag (`Contract.Name` or `Name`).
func StaticResolver(identifiers map[string]string) IdentifierResolver {
	return func(tag CompositeTag) (string, bool) {
		identifier, ok := identifiers[tag.String()]
		return identifier, ok
	}
}
