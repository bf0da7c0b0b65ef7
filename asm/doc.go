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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	------------------------------------------------
//	1	add	a b d		d = a + b
//	2	mul	a b d		d = a * b
//	3	in	d		d = next input value
//	4	out	a		output a
//	5	jt	a t		jump to t if a != 0
//	6	jf	a t		jump to t if a == 0
//	7	lt	a b d		d = 1 if a < b, else 0
//	8	eq	a b d		d = 1 if a == b, else 0
//	9	arb	a		add a to the relative base
//	99	hlt			halt
//
// Operands:
//
// An operand is an integer literal or a label/constant identifier, optionally
// prefixed with a parameter mode:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	~42	relative mode: the value at address relative base + 42
//
// The parameter modes of an instruction are computed from its operands and
// folded into the instruction word, so "add #1 ~2 10" assembles to
// 2101,1,2,10. Integer literals accept Go prefixes (0x, 0o, 0b). Operands may be
// separated by white space or commas.
//
// Labels, constants and data:
//
//	:name		defines label name at the current address
//	.equ name n	defines constant name with value n. It does not generate code.
//	.dat n...	places raw values at the current address, up to the next
//			mnemonic, label or directive.
//
// Identifiers must start with a letter or '_' and may not be a mnemonic.
// Labels can be used before their definition.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not)
//
// Example:
//
//	( output the input value doubled )
//		in	x
//		mul	x #2 x
//		out	x
//		hlt
//	:x	.dat 0
package asm
