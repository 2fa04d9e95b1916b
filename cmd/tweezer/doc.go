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

// Command tweezer compiles a Twee story file into a version-8
// Z-Machine story file.
//
// Usage:
//
//	tweezer [flags] [input.twee]
//
// With no input file, source is read from stdin. The compiled story
// is written to -o, or to the input name with its extension replaced
// by .z8 (story.z8 when reading from stdin).
//
// Flags:
//
//	-o name     output story file name
//	-w          allow overwriting an existing output file
//	-v          verbose diagnostics (full error chain)
//	-q          suppress non-fatal diagnostics
//	-l file     tee diagnostics to a log file
//	-force      log recoverable errors and keep compiling
//	-bright     use the light-terminal colour palette
//	-no-native-formatting
//	            fall back to textual markers for styles the
//	            Z-Machine has no native style bit for
package main
