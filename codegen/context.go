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

import (
	"github.com/db47h/tweezer/config"
	"github.com/db47h/tweezer/symtab"
)

// Context carries everything genNode needs across a single passage
// walk: the shared symbol table, the compiler options, the open-format
// stack, the if/elseif/else label counter, silently/nobr suppression
// flags, and the expression-evaluation temp-slot free list.
type Context struct {
	Syms *symtab.Table
	Ids  *IdentifierProvider
	Cfg  *config.Config

	format *formatStack

	silentDepth int
	nobrDepth   int

	freeTemps []int

	// referenced records every passage name mentioned by a link or
	// display macro, for the reachability check run after codegen.
	referenced map[string]bool
}

// NewContext creates a Context backed by the given symbol table and
// options. cfg may be nil, in which case every option defaults to off.
func NewContext(syms *symtab.Table, cfg *config.Config) *Context {
	free := make([]int, 0, symtab.LastTempSlot-symtab.FirstTempSlot+1)
	for s := symtab.LastTempSlot; s >= symtab.FirstTempSlot; s-- {
		free = append(free, s)
	}
	return &Context{
		Syms:       syms,
		Ids:        NewIdentifierProvider(),
		Cfg:        cfg,
		format:     newFormatStack(),
		freeTemps:  free,
		referenced: make(map[string]bool),
	}
}

// allocTemp pops a scratch global slot off the free list. Expression
// evaluation never nests deeper than the 14 available temps; running
// out indicates a pathologically deep expression, which panics rather
// than silently corrupting unrelated globals.
func (c *Context) allocTemp() int {
	if len(c.freeTemps) == 0 {
		panic("codegen: temp-slot pool exhausted")
	}
	s := c.freeTemps[len(c.freeTemps)-1]
	c.freeTemps = c.freeTemps[:len(c.freeTemps)-1]
	return s
}

// freeTemp returns a scratch slot to the free list.
func (c *Context) freeTemp(slot int) {
	c.freeTemps = append(c.freeTemps, slot)
}

func (c *Context) isSilent() bool { return c.silentDepth > 0 }
func (c *Context) isNobr() bool   { return c.nobrDepth > 0 }

func (c *Context) markReferenced(passage string) {
	c.referenced[passage] = true
}
