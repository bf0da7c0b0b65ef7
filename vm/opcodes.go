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

import "strconv"

// Opcode is the operation selector found in the two lowest decimal digits of
// an instruction word.
type Opcode int

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

// Instruction describes the shape of an opcode.
type Instruction struct {
	Op       Opcode
	Name     string
	Operands int
	// Advance is the number of cells the PC moves forward after execution.
	// Taken jumps and halt do not advance.
	Advance int
}

var instructions = [...]Instruction{
	{OpAdd, "add", 3, 4},
	{OpMul, "mul", 3, 4},
	{OpIn, "in", 1, 2},
	{OpOut, "out", 1, 2},
	{OpJumpIfTrue, "jt", 2, 3},
	{OpJumpIfFalse, "jf", 2, 3},
	{OpLessThan, "lt", 3, 4},
	{OpEquals, "eq", 3, 4},
	{OpAdjustBase, "arb", 1, 2},
	{OpHalt, "hlt", 0, 0},
}

var (
	opcodeIndex = make(map[Opcode]*Instruction, len(instructions))
	nameIndex   = make(map[string]*Instruction, len(instructions))
)

func init() {
	for k := range instructions {
		ins := &instructions[k]
		opcodeIndex[ins.Op] = ins
		nameIndex[ins.Name] = ins
	}
}

// Lookup returns the Instruction for the given opcode. The boolean result is
// false for unknown opcodes.
func Lookup(op Opcode) (Instruction, bool) {
	ins, ok := opcodeIndex[op]
	if !ok {
		return Instruction{}, false
	}
	return *ins, true
}

// LookupName returns the Instruction with the given mnemonic.
func LookupName(name string) (Instruction, bool) {
	ins, ok := nameIndex[name]
	if !ok {
		return Instruction{}, false
	}
	return *ins, true
}

// Instructions returns the instruction table in opcode order.
func Instructions() []Instruction {
	t := make([]Instruction, len(instructions))
	copy(t, instructions[:])
	return t
}

func (op Opcode) String() string {
	if ins, ok := opcodeIndex[op]; ok {
		return ins.Name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}
