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

package asm

import (
	"fmt"
	"io"
	"math/big"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// Error is an assembly error.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds a list of errors,
// one per line.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var s string
	for k := range e {
		if k > 0 {
			s += "\n"
		}
		s += e[k].Error()
	}
	return s
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.img, nil
}

var one = big.NewInt(1)

func validModes(ins vm.Instruction, modes vm.Modes) bool {
	for n := 1; n <= ins.Operands; n++ {
		switch modes.Mode(n) {
		case vm.ModePosition, vm.ModeImmediate, vm.ModeRelative:
		default:
			return false
		}
	}
	return true
}

// Disassemble writes a disassembly of the instruction at address pc in m to
// the specified io.Writer and returns the address of the next instruction and
// any read or write error.
//
// Words that do not decode to a valid instruction are written as a .dat
// directive.
func Disassemble(m vm.Reader, pc *big.Int, w io.Writer) (next *big.Int, err error) {
	ew := ici.NewErrWriter(w)

	word, err := m.Read(pc)
	if err != nil {
		return nil, err
	}
	next = new(big.Int).Add(pc, one)
	op, modes := vm.Decode(word)
	ins, ok := vm.Lookup(op)
	if !ok || !validModes(ins, modes) {
		fmt.Fprintf(ew, ".dat %v", word)
		return next, ew.Err
	}
	ew.WriteString(ins.Name)
	for n := 1; n <= ins.Operands; n++ {
		v, err := m.Read(next)
		if err != nil {
			return nil, err
		}
		switch modes.Mode(n) {
		case vm.ModeImmediate:
			ew.WriteString(" #")
		case vm.ModeRelative:
			ew.WriteString(" ~")
		default:
			ew.WriteString(" ")
		}
		ew.WriteString(v.String())
		next.Add(next, one)
	}
	return next, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to the
// specified io.Writer, one instruction per line, prefixed with its address.
// It will return any write error.
func DisassembleAll(img vm.Image, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	end := big.NewInt(int64(len(img)))
	for pc := new(big.Int); pc.Cmp(end) < 0; {
		fmt.Fprintf(ew, "%6v\t", pc)
		next, err := Disassemble(img, pc, ew)
		if err != nil {
			return err
		}
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
		pc = next
	}
	return nil
}
