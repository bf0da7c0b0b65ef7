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

package vm_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigAddr(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func TestMemory_unset(t *testing.T) {
	m := vm.NewMemory(vm.Ints(1, 2, 3))
	for _, a := range []string{"3", "4", "1000", "123456789012345678901234567890"} {
		v, err := m.Read(bigAddr(a))
		require.NoError(t, err)
		assert.Equal(t, 0, v.Sign(), a)
	}
	assert.Equal(t, 0, m.SparseLen())
}

func TestMemory_roundTrip(t *testing.T) {
	m := vm.NewMemory(vm.Ints(1, 2, 3, 4))
	for _, a := range []string{"0", "3", "4", "5", "99999", "123456789012345678901234567890"} {
		v := bigAddr("-" + a + "7")
		require.NoError(t, m.Write(bigAddr(a), v))
		got, err := m.Read(bigAddr(a))
		require.NoError(t, err)
		assert.Equal(t, v.String(), got.String(), a)
	}
	// 0 and 3 are dense, the rest is sparse. Address 4 (== len) is the first
	// sparse address.
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, 4, m.SparseLen())
	assert.Equal(t, "-7,2,3,-37", m.Dense().String())

	var addrs []string
	m.EachSparse(func(addr, v *big.Int) bool {
		addrs = append(addrs, addr.String())
		return true
	})
	assert.Equal(t, []string{"4", "5", "99999", "123456789012345678901234567890"}, addrs)
}

func TestMemory_copies(t *testing.T) {
	img := vm.Ints(10)
	m := vm.NewMemory(img)
	img[0].SetInt64(11)

	v, err := m.Read(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())
	v.SetInt64(12)
	v, _ = m.Read(big.NewInt(0))
	assert.Equal(t, "10", v.String())

	addr, val := big.NewInt(5), big.NewInt(50)
	require.NoError(t, m.Write(addr, val))
	addr.SetInt64(6)
	val.SetInt64(60)
	v, _ = m.Read(big.NewInt(5))
	assert.Equal(t, "50", v.String())
}

func TestMemory_negative(t *testing.T) {
	m := vm.NewMemory(vm.Ints(1))
	_, err := m.Read(big.NewInt(-1))
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
	err = m.Write(big.NewInt(-1), big.NewInt(0))
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
	_, err = m.Resolve(big.NewInt(-1), vm.ModePosition, big.NewInt(0))
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
	_, err = m.Resolve(big.NewInt(1), vm.ModeRelative, big.NewInt(-2))
	assert.Equal(t, vm.ErrNegativeAddress, errors.Cause(err))
}

func TestMemory_resolve(t *testing.T) {
	m := vm.NewMemory(vm.Ints(5, 6, 7, 8, 9))
	zero := new(big.Int)

	// immediate operands never touch memory, even with addresses that would
	// fail to read.
	for _, raw := range []int64{-100, 0, 3, 1 << 40} {
		v, err := m.Resolve(big.NewInt(raw), vm.ModeImmediate, big.NewInt(-1000))
		require.NoError(t, err)
		assert.Equal(t, raw, v.Int64())
	}

	v, err := m.Resolve(big.NewInt(2), vm.ModePosition, zero)
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	_, err = m.Resolve(big.NewInt(2), vm.Mode(5), zero)
	assert.Equal(t, vm.ErrBadMode, errors.Cause(err))

	// relative(x, base b) == position(x+b)
	rnd := rand.New(rand.NewSource(42))
	for n := 0; n < 100; n++ {
		b := int64(rnd.Intn(20) - 10)
		x := int64(rnd.Intn(20)) - b
		rel, err := m.Resolve(big.NewInt(x), vm.ModeRelative, big.NewInt(b))
		require.NoError(t, err)
		pos, err := m.Resolve(big.NewInt(x+b), vm.ModePosition, zero)
		require.NoError(t, err)
		assert.Equal(t, pos.String(), rel.String())
	}
}
