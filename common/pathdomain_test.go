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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathDomainFromIdentifier(t *testing.T) {

	t.Parallel()

	for _, domain := range AllPathDomains {
		require.Equal(t, domain, PathDomainFromIdentifier(domain.Identifier()))
	}

	assert.Equal(t, PathDomainUnknown, PathDomainFromIdentifier("Storage"))
	assert.Equal(t, PathDomainUnknown, PathDomainFromIdentifier(""))
	assert.Equal(t, "unknown", PathDomainUnknown.String())
	assert.Equal(t, "public", PathDomainPublic.String())
}

func TestPathDomainIdentifierUnknownPanics(t *testing.T) {

	t.Parallel()

	assert.Panics(t, func() {
		_ = PathDomainUnknown.Identifier()
	})
}
