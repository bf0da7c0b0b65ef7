// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package vm

import (
	"math/big"

	"github.com/pkg/errors"
)

// AddInput appends values to the input queue and clears the interrupted flag.
// It does not restart execution: call Resume for that.
func (i *Instance) AddInput(values ...*big.Int) {
	for _, v := range values {
		i.input = append(i.input, new(big.Int).Set(v))
	}
	i.interrupted = false
}

// PendingInput returns the number of input values not yet consumed.
func (i *Instance) PendingInput() int {
	return len(i.input) - i.inPos
}

// ReadOutput returns the next unread output value. It returns ErrNoOutput if
// all output produced so far has already been read.
func (i *Instance) ReadOutput() (*big.Int, error) {
	if i.outPos >= len(i.output) {
		return nil, errors.Wrapf(ErrNoOutput, "read #%d", i.outPos)
	}
	v := i.output[i.outPos]
	i.outPos++
	return new(big.Int).Set(v), nil
}

// HasOutput returns true if there is unread output.
func (i *Instance) HasOutput() bool {
	return i.outPos < len(i.output)
}

// PendingOutput returns the number of unread output values.
func (i *Instance) PendingOutput() int {
	return len(i.output) - i.outPos
}

// Outputs returns a copy of all output produced so far, read or not.
func (i *Instance) Outputs() []*big.Int {
	return Image(i.output).Clone()
}

func (i *Instance) readInput() (*big.Int, bool) {
	if i.inPos >= len(i.input) {
		return nil, false
	}
	v := i.input[i.inPos]
	i.inPos++
	return v, true
}

func (i *Instance) writeOutput(v *big.Int) {
	i.output = append(i.output, v)
}
