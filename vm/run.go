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

// Run resets the PC to 0 and starts execution of the VM. It returns when the
// VM halts, when it needs more input (see Interrupted) or on error.
//
// Run does not reset memory, registers other than the PC or I/O queues, and
// running a halted VM is a no-op.
//
// Any error halts the VM. If an error occurs, the PC will point to the
// instruction that triggered the error.
func (i *Instance) Run() error {
	i.pc.SetInt64(0)
	i.insCount = 0
	return i.loop()
}

// Resume clears the interrupted flag and continues execution from the current
// PC. Use it after supplying new input with AddInput. Resuming a halted VM is a
// no-op.
func (i *Instance) Resume() error {
	i.interrupted = false
	return i.loop()
}

// Step executes a single instruction if the VM is neither halted nor
// interrupted.
func (i *Instance) Step() (err error) {
	defer i.recoverFault(&err)
	if !i.runnable() {
		return nil
	}
	return i.step()
}

func (i *Instance) runnable() bool {
	return !i.halted && !i.interrupted
}

func (i *Instance) loop() (err error) {
	defer i.recoverFault(&err)
	i.running = true
	for i.runnable() {
		if err = i.step(); err != nil {
			return err
		}
	}
	return nil
}

func (i *Instance) recoverFault(err *error) {
	i.running = false
	if e := recover(); e != nil {
		*err = errors.Errorf("%v", e)
	}
	if *err != nil {
		i.halted = true
	}
}

// arg returns the raw value of operand n.
func (i *Instance) arg(n int64) (*big.Int, error) {
	addr := new(big.Int).Add(i.pc, big.NewInt(n))
	return i.mem.Read(addr)
}

// operand returns the value of operand n, resolved according to its mode.
func (i *Instance) operand(n int, modes Modes) (*big.Int, error) {
	raw, err := i.arg(int64(n))
	if err != nil {
		return nil, err
	}
	return i.mem.Resolve(raw, modes.Mode(n), i.rb)
}

// dest returns the address designated by destination operand n.
func (i *Instance) dest(n int, modes Modes) (*big.Int, error) {
	raw, err := i.arg(int64(n))
	if err != nil {
		return nil, err
	}
	if i.relDest && modes.Mode(n) == ModeRelative {
		raw.Add(raw, i.rb)
	}
	return raw, nil
}

func (i *Instance) operands2(modes Modes) (a, b *big.Int, err error) {
	if a, err = i.operand(1, modes); err != nil {
		return nil, nil, err
	}
	if b, err = i.operand(2, modes); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (i *Instance) advance(ins Instruction) {
	i.pc.Add(i.pc, big.NewInt(int64(ins.Advance)))
}

func (i *Instance) jump(target *big.Int) error {
	if target.Sign() < 0 {
		return errors.Wrapf(ErrBadJump, "target %v", target)
	}
	i.pc.Set(target)
	return nil
}

func (i *Instance) step() error {
	if i.trace != nil {
		i.trace(i)
	}
	if err := i.exec(); err != nil {
		return errors.Wrapf(err, "pc %v", i.pc)
	}
	return nil
}

func (i *Instance) exec() error {
	word, err := i.mem.Read(i.pc)
	if err != nil {
		return err
	}
	op, modes := Decode(word)
	ins, ok := Lookup(op)
	if !ok {
		i.log.Warningf("unknown opcode %v at pc %v, halting", word, i.pc)
		i.halted = true
		return errors.Wrapf(ErrUnknownOpcode, "%v", word)
	}

	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		a, b, err := i.operands2(modes)
		if err != nil {
			return err
		}
		dst, err := i.dest(3, modes)
		if err != nil {
			return err
		}
		var v big.Int
		switch op {
		case OpAdd:
			v.Add(a, b)
		case OpMul:
			v.Mul(a, b)
		case OpLessThan:
			if a.Cmp(b) < 0 {
				v.SetInt64(1)
			}
		case OpEquals:
			if a.Cmp(b) == 0 {
				v.SetInt64(1)
			}
		}
		if err = i.mem.Write(dst, &v); err != nil {
			return err
		}
		i.advance(ins)
	case OpIn:
		dst, err := i.dest(1, modes)
		if err != nil {
			return err
		}
		v, ok := i.readInput()
		if !ok {
			i.log.Debugf("pc %v: waiting for input", i.pc)
			i.interrupted = true
			return nil
		}
		if err = i.mem.Write(dst, v); err != nil {
			return err
		}
		i.advance(ins)
	case OpOut:
		v, err := i.operand(1, modes)
		if err != nil {
			return err
		}
		i.writeOutput(v)
		i.advance(ins)
	case OpJumpIfTrue, OpJumpIfFalse:
		cond, target, err := i.operands2(modes)
		if err != nil {
			return err
		}
		if (cond.Sign() != 0) == (op == OpJumpIfTrue) {
			if err = i.jump(target); err != nil {
				return err
			}
		} else {
			i.advance(ins)
		}
	case OpAdjustBase:
		v, err := i.operand(1, modes)
		if err != nil {
			return err
		}
		i.rb.Add(i.rb, v)
		i.advance(ins)
	case OpHalt:
		i.log.Debugf("pc %v: halt", i.pc)
		i.halted = true
	}
	i.insCount++
	return nil
}
