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
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/onflow/cadence-codec/common"
	"github.com/onflow/cadence-codec/wire"
)

// PathValue is a storage path, e.g. `/storage/flowTokenVault`.
type PathValue struct {
	Domain     common.PathDomain
	Identifier string
}

// NewPathValue returns the path with the given domain and identifier.
func NewPathValue(domain common.PathDomain, identifier string) PathValue {
	return PathValue{
		Domain:     domain,
		Identifier: identifier,
	}
}

func (p PathValue) String() string {
	return fmt.Sprintf("/%s/%s", p.Domain, p.Identifier)
}

type jsonPathValue struct {
	Domain     string `json:"domain"`
	Identifier string `json:"identifier"`
}

func (p PathValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPathValue{
		Domain:     p.Domain.String(),
		Identifier: p.Identifier,
	})
}

var pathShorthandPattern = regexp.MustCompile(`^/(storage|private|public)/([^/]+)$`)

// ParsePath parses the `/domain/identifier` shorthand.
func ParsePath(shorthand string) (PathValue, error) {
	match := pathShorthandPattern.FindStringSubmatch(shorthand)
	if match == nil {
		return PathValue{}, NewSchemaMismatchError(
			nil,
			"path of the form `/domain/identifier`",
			quote(shorthand),
		)
	}

	return PathValue{
		Domain:     common.PathDomainFromIdentifier(match[1]),
		Identifier: match[2],
	}, nil
}

// normalizePath converts an encodable path input into a PathValue.
// Accepted inputs are PathValue, *PathValue, the `/domain/identifier` shorthand,
// and the JSON object form `{"domain": ..., "identifier": ...}`.
func normalizePath(input any) (PathValue, error) {
	switch input := input.(type) {
	case PathValue:
		return input, nil

	case *PathValue:
		if input == nil {
			return PathValue{}, NewSchemaMismatchError(nil, "path", "nil *PathValue")
		}
		return *input, nil

	case string:
		return ParsePath(input)

	case map[string]any:
		domain, domainOK := input["domain"].(string)
		identifier, identifierOK := input["identifier"].(string)
		if !domainOK || !identifierOK || len(input) != 2 {
			return PathValue{}, NewSchemaMismatchError(
				nil,
				"path object with string properties `domain` and `identifier`",
				fmt.Sprintf("%v", input),
			)
		}
		return PathValue{
			Domain:     common.PathDomainFromIdentifier(domain),
			Identifier: identifier,
		}, nil
	}

	return PathValue{}, NewSchemaMismatchError(nil, "path", fmt.Sprintf("%T", input))
}

// PathCodec encodes storage paths.
type PathCodec = Codec[PathValue, any]

var (
	// Path accepts paths in any domain.
	Path = newPathCodec(common.PathDomainUnknown)

	StoragePath = newPathCodec(common.PathDomainStorage)
	PrivatePath = newPathCodec(common.PathDomainPrivate)
	PublicPath  = newPathCodec(common.PathDomainPublic)
)

// newPathCodec returns a path codec restricted to the given domain,
// or accepting all domains if the domain is unknown.
func newPathCodec(domain common.PathDomain) PathCodec {

	expectedDomain := "`storage`, `private`, or `public`"
	if domain != common.PathDomainUnknown {
		expectedDomain = fmt.Sprintf("`%s`", domain)
	}

	checkDomain := func(path ValuePath, actual common.PathDomain, actualText string) error {
		if actual == common.PathDomainUnknown ||
			(domain != common.PathDomainUnknown && actual != domain) {

			return NewSchemaMismatchError(path, "path domain "+expectedDomain, quote(actualText))
		}
		return nil
	}

	return New[PathValue, any](
		wire.TagPath,
		func(_ EncodeContext, input any) (wire.Value, error) {
			path, err := normalizePath(input)
			if err != nil {
				return wire.Value{}, err
			}

			domainPath := ValuePath{}.payloadPath().Property("domain")
			if path.Domain == common.PathDomainUnknown {
				return wire.Value{}, NewSchemaMismatchError(domainPath, "path domain "+expectedDomain, "unknown domain")
			}
			err = checkDomain(domainPath, path.Domain, path.Domain.Identifier())
			if err != nil {
				return wire.Value{}, err
			}

			return wire.NewPath(path.Domain.Identifier(), path.Identifier), nil
		},
		payloadSchema(wire.TagPath, func(path ValuePath, payload wire.Path) error {
			return checkDomain(
				path.Property("domain"),
				common.PathDomainFromIdentifier(payload.Domain),
				payload.Domain,
			)
		}),
		func(value wire.Value) (PathValue, error) {
			payload := value.Value.(wire.Path)
			return PathValue{
				Domain:     common.PathDomainFromIdentifier(payload.Domain),
				Identifier: payload.Identifier,
			}, nil
		},
	)
}
