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
	"fmt"
	"math/big"
	"strings"

	"github.com/db47h/intcode/vm"
)

// Runs a program that outputs a copy of itself.
func ExampleInstance_Run() {
	img, err := vm.ParseImage(strings.NewReader("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"))
	if err != nil {
		panic(err)
	}
	i, err := vm.New(img)
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(vm.Image(i.Outputs()))

	// Output:
	// 109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99
}

// Shows how to feed input to a program that runs out of it.
func ExampleInstance_Resume() {
	// doubles every input value until it reads 0
	img := vm.Ints(3, 15, 1006, 15, 14, 1002, 15, 2, 15, 4, 15, 1105, 1, 0, 99, 0)
	i, err := vm.New(img, vm.Input(big.NewInt(21)))
	if err != nil {
		panic(err)
	}
	err = i.Run()
	for _, v := range []int64{100, 0} {
		if err != nil || !i.Interrupted() {
			break
		}
		for i.HasOutput() {
			out, _ := i.ReadOutput()
			fmt.Println(out)
		}
		i.AddInput(big.NewInt(v))
		err = i.Resume()
	}
	if err != nil {
		panic(err)
	}
	for i.HasOutput() {
		out, _ := i.ReadOutput()
		fmt.Println(out)
	}
	fmt.Println(i.State())

	// Output:
	// 42
	// 200
	// halted
}
