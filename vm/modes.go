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
	"fmt"
	"math/big"
	"strconv"
)

// Mode is a parameter addressing mode.
type Mode int

// Parameter modes.
const (
	ModePosition  Mode = iota // operand is an address
	ModeImmediate             // operand is the value
	ModeRelative              // operand is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Modes holds the parameter modes of the three potential operands of an
// instruction.
type Modes [3]Mode

// Mode returns the mode of operand n, with n in 1..3. Any other value of n is
// a programming error and Mode will panic.
func (m Modes) Mode(n int) Mode {
	if n < 1 || n > len(m) {
		panic(fmt.Sprintf("invalid parameter mode slot %d", n))
	}
	return m[n-1]
}

func (m Modes) String() string {
	return fmt.Sprintf("Modes(%d %d %d)", m[0], m[1], m[2])
}

var (
	big10  = big.NewInt(10)
	big100 = big.NewInt(100)
)

// Decode splits an instruction word into its opcode and parameter modes.
// Missing mode digits default to ModePosition. Negative words decode to an
// invalid opcode.
func Decode(word *big.Int) (op Opcode, modes Modes) {
	if word.Sign() < 0 {
		return -1, modes
	}
	if word.IsInt64() {
		w := word.Int64()
		op = Opcode(w % 100)
		w /= 100
		for k := range modes {
			modes[k] = Mode(w % 10)
			w /= 10
		}
		return op, modes
	}
	var q, r big.Int
	q.DivMod(word, big100, &r)
	op = Opcode(r.Int64())
	for k := range modes {
		q.DivMod(&q, big10, &r)
		modes[k] = Mode(r.Int64())
	}
	return op, modes
}

// Encode builds an instruction word from an opcode and parameter modes.
func Encode(op Opcode, modes Modes) *big.Int {
	w := int64(op)
	f := int64(100)
	for _, m := range modes {
		w += int64(m) * f
		f *= 10
	}
	return big.NewInt(w)
}
