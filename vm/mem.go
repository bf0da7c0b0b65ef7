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

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
)

// Reader is implemented by types that can be read like VM memory.
type Reader interface {
	Read(addr *big.Int) (*big.Int, error)
}

// Memory is the VM address space. Addresses below the length of the initial
// program live in a dense slice, anything above lives in a sparse ordered map.
// An address is never present in both.
//
// Values passed to and returned by Memory are copies.
type Memory struct {
	dense  []*big.Int
	sparse *treemap.Map
}

func compareInts(a, b interface{}) int {
	return a.(*big.Int).Cmp(b.(*big.Int))
}

// NewMemory returns a new Memory whose dense part is a copy of image.
func NewMemory(image Image) *Memory {
	m := &Memory{
		dense:  make([]*big.Int, len(image)),
		sparse: treemap.NewWith(compareInts),
	}
	for k, v := range image {
		c := new(big.Int)
		if v != nil {
			c.Set(v)
		}
		m.dense[k] = c
	}
	return m
}

// index returns the dense index of addr or false if addr is beyond the dense
// store.
func (m *Memory) index(addr *big.Int) (int, bool) {
	if addr.IsInt64() && addr.Int64() < int64(len(m.dense)) {
		return int(addr.Int64()), true
	}
	return 0, false
}

// Read returns the value stored at addr. Unset addresses read as 0.
func (m *Memory) Read(addr *big.Int) (*big.Int, error) {
	if addr.Sign() < 0 {
		return nil, errors.Wrapf(ErrNegativeAddress, "read %v", addr)
	}
	if k, ok := m.index(addr); ok {
		return new(big.Int).Set(m.dense[k]), nil
	}
	if v, found := m.sparse.Get(addr); found {
		return new(big.Int).Set(v.(*big.Int)), nil
	}
	return new(big.Int), nil
}

// Write stores v at addr.
func (m *Memory) Write(addr, v *big.Int) error {
	if addr.Sign() < 0 {
		return errors.Wrapf(ErrNegativeAddress, "write %v", addr)
	}
	if k, ok := m.index(addr); ok {
		m.dense[k].Set(v)
		return nil
	}
	m.sparse.Put(new(big.Int).Set(addr), new(big.Int).Set(v))
	return nil
}

// Resolve returns the value of an operand given its raw value, its mode and
// the relative base. Immediate operands never touch memory.
func (m *Memory) Resolve(raw *big.Int, mode Mode, base *big.Int) (*big.Int, error) {
	switch mode {
	case ModeImmediate:
		return new(big.Int).Set(raw), nil
	case ModePosition:
		return m.Read(raw)
	case ModeRelative:
		return m.Read(new(big.Int).Add(raw, base))
	}
	return nil, errors.Wrapf(ErrBadMode, "%v", mode)
}

// Len returns the size of the dense store, i.e. the initial program length.
func (m *Memory) Len() int {
	return len(m.dense)
}

// SparseLen returns the number of cells written beyond the dense store.
func (m *Memory) SparseLen() int {
	return m.sparse.Size()
}

// Dense returns a copy of the dense store.
func (m *Memory) Dense() Image {
	return Image(m.dense).Clone()
}

// EachSparse calls fn for every cell of the sparse store in ascending address
// order until fn returns false.
func (m *Memory) EachSparse(fn func(addr, v *big.Int) bool) {
	it := m.sparse.Iterator()
	for it.Next() {
		if !fn(new(big.Int).Set(it.Key().(*big.Int)), new(big.Int).Set(it.Value().(*big.Int))) {
			return
		}
	}
}
