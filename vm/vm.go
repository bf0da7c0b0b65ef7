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
	"io"
	"math/big"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Errors returned by the VM. Use errors.Cause to test against them.
var (
	ErrNegativeAddress = errors.New("negative memory address")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrBadMode         = errors.New("invalid parameter mode")
	ErrBadJump         = errors.New("jump to negative address")
	ErrNoOutput        = errors.New("no output available")
)

// State is the run state of an Instance.
type State int

// VM states. Ready is the state of a runnable VM that is not executing: before
// the first Run, after Step, or after AddInput on an interrupted VM until the
// next Resume.
const (
	Ready State = iota
	Running
	Interrupted
	Halted
)

var stateNames = [...]string{"ready", "running", "interrupted", "halted"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Instance represents an Intcode VM instance.
//
// An Instance is not safe for concurrent use. Programs that run several VMs
// at once must have each VM owned by a single goroutine and pass values from
// one to another with ReadOutput and AddInput.
type Instance struct {
	mem         *Memory
	pc          *big.Int
	rb          *big.Int
	input       []*big.Int
	inPos       int
	output      []*big.Int
	outPos      int
	halted      bool
	interrupted bool
	running     bool
	insCount    int64
	relDest     bool
	trace       func(*Instance)
	log         commonlog.Logger
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(values ...*big.Int) Option {
	return func(i *Instance) error {
		i.AddInput(values...)
		return nil
	}
}

// RelativeDestinations enables or disables mode aware destination operands.
//
// By default, the destination operand of add, mul, in, lt and eq is always
// used as a raw address regardless of its parameter mode. When enabled, a
// destination in relative mode is offset by the relative base before writing.
// The default is false.
func RelativeDestinations(enable bool) Option {
	return func(i *Instance) error { i.relDest = enable; return nil }
}

// Trace sets a function to be called before each instruction is executed.
func Trace(fn func(i *Instance)) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// Logger sets the logger used by the VM. The default is the "intcode.vm"
// commonlog logger.
func Logger(l commonlog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			return errors.New("nil logger")
		}
		i.log = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode VM instance.
//
// The image is copied into the VM memory, so the caller is free to reuse it.
// Initial inputs are supplied with the Input option. Options will be set by
// calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem: NewMemory(image),
		pc:  new(big.Int),
		rb:  new(big.Int),
		log: commonlog.GetLogger("intcode.vm"),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current run state.
func (i *Instance) State() State {
	switch {
	case i.halted:
		return Halted
	case i.interrupted:
		return Interrupted
	case i.running:
		return Running
	}
	return Ready
}

// Halted returns true if the VM has executed a halt instruction or stopped on
// a fatal error.
func (i *Instance) Halted() bool { return i.halted }

// Interrupted returns true if the VM is waiting for input.
func (i *Instance) Interrupted() bool { return i.interrupted }

// PC returns a copy of the program counter (aka. instruction pointer).
func (i *Instance) PC() *big.Int { return new(big.Int).Set(i.pc) }

// RelativeBase returns a copy of the relative base register.
func (i *Instance) RelativeBase() *big.Int { return new(big.Int).Set(i.rb) }

// Memory returns the VM memory.
func (i *Instance) Memory() *Memory { return i.mem }

// InstructionCount returns the number of instructions executed since the last
// call to Run.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes a human readable rendering of the VM state to w: registers,
// flags, input queue with the next value to read in brackets, output and
// memory.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	fmt.Fprintf(ew, "pc=%v rb=%v state=%v steps=%d\n", i.pc, i.rb, i.State(), i.insCount)
	ew.WriteString("input:")
	for k, v := range i.input {
		if k == i.inPos {
			fmt.Fprintf(ew, " [%v]", v)
		} else {
			fmt.Fprintf(ew, " %v", v)
		}
	}
	ew.WriteString("\noutput: ")
	ew.WriteInts(i.output, " ")
	ew.WriteString("\nmemory: ")
	ew.WriteInts(i.mem.dense, ",")
	if i.mem.SparseLen() > 0 {
		ew.WriteString("\nsparse:")
		i.mem.EachSparse(func(addr, v *big.Int) bool {
			fmt.Fprintf(ew, " %v:%v", addr, v)
			return ew.Err == nil
		})
	}
	ew.WriteString("\n")
	return ew.Err
}
