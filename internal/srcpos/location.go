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

// Package srcpos provides the source location type shared by the lexer,
// parser and AST.
package srcpos

import "strconv"

// Location is a 1-based line/column position in the original source.
type Location struct {
	Line int
	Col  int
}

// IsValid reports whether the location was ever set.
func (l Location) IsValid() bool {
	return l.Line > 0
}

func (l Location) String() string {
	if !l.IsValid() {
		return "-"
	}
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
}
