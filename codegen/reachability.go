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
	"fmt"

	"github.com/db47h/tweezer/config"
	"github.com/db47h/tweezer/parse"
)

// ErrNoStartPassage is returned when no passage is named Start (an
// empty story included), so there is nothing to make the Start routine.
type ErrNoStartPassage struct{}

func (ErrNoStartPassage) Error() string { return "story has no passage named Start: no Start routine to compile" }

// ErrPassageNotFound is returned when a link or display macro names a
// passage that was never declared.
type ErrPassageNotFound struct {
	Name string
}

func (e ErrPassageNotFound) Error() string {
	return fmt.Sprintf("passage %q does not exist", e.Name)
}

// checkReachability verifies the story has a passage literally named
// Start (never relaxed by Force: there is no best-effort default for a
// missing entry point) and that every link/display target names a
// passage that actually exists. In Force mode a missing target is
// reported through cfg and skipped rather than aborting the compile.
func checkReachability(story *parse.Story, ctx *Context, cfg *config.Config) error {
	if !ctx.Syms.HasPassage("Start") {
		return ErrNoStartPassage{}
	}
	for name := range ctx.referenced {
		if ctx.Syms.HasPassage(name) {
			continue
		}
		err := ErrPassageNotFound{Name: name}
		if cfg != nil {
			if cfg.Report(err, err.Error()) == nil {
				continue
			}
		}
		return err
	}
	return nil
}
