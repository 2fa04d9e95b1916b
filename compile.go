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

// Package tweezer compiles Twee hypertext source into a version-8
// Z-Machine story file: lex, parse, lower to ZOp, then assemble.
package tweezer

import (
	"io"

	"github.com/db47h/tweezer/codegen"
	"github.com/db47h/tweezer/config"
	"github.com/db47h/tweezer/lex"
	"github.com/db47h/tweezer/parse"
	"github.com/db47h/tweezer/symtab"
	"github.com/db47h/tweezer/zmachine"
	"github.com/pkg/errors"
)

// Compile reads Twee source named name from r, compiles it, and
// writes the resulting story file to w.
func Compile(name string, r io.Reader, w io.Writer, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.New()
	}

	l := lex.New(name, lex.NewScreener(r))
	p := parse.New(l)
	story, err := p.Parse()
	if err != nil {
		return errors.Wrap(err, "parse failed")
	}

	syms := symtab.New()
	res, err := codegen.Generate(story, syms, cfg)
	if err != nil {
		return errors.Wrap(err, "code generation failed")
	}

	data, err := zmachine.Assemble(res, cfg)
	if err != nil {
		return errors.Wrap(err, "assembly failed")
	}

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
