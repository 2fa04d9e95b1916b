// This file is part of tweezer.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

// IdentifierProvider hands out unique numeric suffixes for generated
// labels, so nested if/elseif/else constructs never collide.
type IdentifierProvider struct {
	next int
}

// NewIdentifierProvider creates an IdentifierProvider starting at 0.
func NewIdentifierProvider() *IdentifierProvider {
	return &IdentifierProvider{}
}

// Next returns a fresh unique id.
func (p *IdentifierProvider) Next() int {
	id := p.next
	p.next++
	return id
}
