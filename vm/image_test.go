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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImage(t *testing.T) {
	img, err := vm.ParseImage(strings.NewReader(" 1, -2,3 ,\n 99999999999999999999999\n"))
	require.NoError(t, err)
	assert.Equal(t, "1,-2,3,99999999999999999999999", img.String())

	for _, code := range []string{"1,2,x", "1,,2", "1,2,", "1.5", "0x10"} {
		_, err = vm.ParseImage(strings.NewReader(code))
		assert.Error(t, err, code)
	}
	_, err = vm.ParseImage(strings.NewReader(" \n"))
	assert.EqualError(t, err, "ParseImage: empty program")

	_, err = vm.ParseImage(strings.NewReader("1,2,oops"))
	assert.EqualError(t, err, `ParseImage: value #2: invalid integer "oops"`)
}

func TestImage_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "prog.txt")
	img := vm.Ints(109, 1, 204, -1, 99)
	img = append(img, bigAddr("1125899906842624000000"))
	require.NoError(t, img.Save(name))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "109,1,204,-1,99,1125899906842624000000\n", string(data))

	back, err := vm.Load(name)
	require.NoError(t, err)
	assert.Equal(t, img.String(), back.String())

	_, err = vm.Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestImage_Read(t *testing.T) {
	img := vm.Ints(4, 5)
	v, err := img.Read(big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
	v, err = img.Read(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "0", v.String())
	_, err = img.Read(big.NewInt(-1))
	assert.Error(t, err)

	c := img.Clone()
	c[0].SetInt64(40)
	assert.Equal(t, "4,5", img.String())
}
