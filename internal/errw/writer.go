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

// Package errw wraps an io.Writer so that the first write error sticks,
// turning every following Write into a cheap no-op instead of attempting
// (and re-failing) the underlying write.
package errw

import (
	"io"

	"github.com/pkg/errors"
)

// Writer is a sticky-error io.Writer. Once a write fails, Err is set and
// every subsequent Write returns that same error without touching the
// wrapped writer again.
type Writer struct {
	w   io.Writer
	Err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}
