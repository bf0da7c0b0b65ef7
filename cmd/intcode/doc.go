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

// The intcode command line tool is a showcase for the package
// github.com/db47h/intcode/vm.
//
// Usage:
//
//	intcode [command] [flags]
//
// Commands:
//
//	run [program]		run a program, reading input from stdin
//	resume snapshot		resume a VM saved with run --save
//	chain [program]		find the phase settings with the highest signal
//	layers image		print the checksum and rendering of a layered image
//	asm source		assemble a program
//	disasm [program]	disassemble a program
//
// Global flags:
//
//	-c, --config file
//		  load configuration from file (default ./intcode.toml if present)
//	-v, --verbose
//		  increase log verbosity (can be repeated)
//	--debug
//		  print stack traces on errors
//
// run and resume flags:
//
//	-i, --input values
//		  add values to the input queue (can be repeated)
//	--trace
//		  disassemble each instruction to stderr before executing it
//	--relative-dest
//		  apply relative mode to destination operands
//	--dump
//		  dump the VM state to stderr upon exit
//	--save file
//		  save a snapshot to file if input runs out while the VM waits for input
//
// Input values are separated by white space or commas. When the VM waits for
// input and the -i values are exhausted, a line is read from stdin. If stdin is
// a terminal, a readline prompt is used.
//
// --save: when stdin is exhausted while the VM waits for input, the complete VM
// state is written to file. Use "intcode resume file" with new input to
// continue:
//
//	$ intcode run --save vm.snap prog.txt < /dev/null
//	$ intcode resume -i 42 vm.snap
//
// Config file:
//
// Settings not given on the command line are read from a TOML file:
//
//	program = "prog.txt"
//	inputs = [1, 2]
//	trace = false
//	relative-destinations = true
//	verbosity = 1
//
//	[layers]
//	width = 25
//	height = 6
//
//	[chain]
//	phases = [5, 6, 7, 8, 9]
//	feedback = true
//
// Relative paths in the config file are relative to the directory of the file.
package main
