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

// Package vm implements the Intcode VM.
//
// An Intcode program is a flat sequence of integers that doubles as the VM
// memory. All cells, the PC and the relative base are arbitrary precision
// integers (math/big), so programs may compute and output values well beyond
// 64 bits.
//
// Memory addresses below the initial program length are stored in a dense
// slice, addresses above are kept in a sparse ordered map and read as 0 until
// written.
//
// The VM never blocks: when an input instruction finds the input queue empty,
// Run or Resume returns with the VM in the Interrupted state and the PC still
// pointing at the input instruction. Supply more input with AddInput, then call
// Resume:
//
//	i, _ := vm.New(img)
//	err := i.Run()
//	for err == nil && i.Interrupted() {
//		i.AddInput(next())
//		err = i.Resume()
//	}
//
// Output is queued and read back with ReadOutput.
//
// Destination operands (the written address of add, mul, in, lt and eq) are
// used as raw addresses regardless of their parameter mode. Programs that rely
// on relative mode writes need the RelativeDestinations option.
package vm
