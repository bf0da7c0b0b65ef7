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
	"sort"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// commas are separators, everything else that prints is part of a word.
func isIdentRune(ch rune, i int) bool {
	return ch != ',' && ch != scanner.EOF &&
		(unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

func isName(s string) bool {
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

const (
	stateStmt = iota
	stateOperand
	stateDat
	stateEquName
	stateEquValue
)

type parser struct {
	img    vm.Image
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]*big.Int
	errs   ErrAsm

	state   int
	ins     vm.Instruction // instruction being assembled
	insAddr int
	modes   vm.Modes
	nArg    int
	cstName string
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]*big.Int)
	return p
}

func (p *parser) error(pos scanner.Position, format string, args ...interface{}) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
	}
}

func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

func (p *parser) write(v *big.Int) {
	p.img = append(p.img, v)
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{p.pos(), -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.pos(), len(p.img)})
}

func (p *parser) defineLabel(name string) {
	if !isName(name) {
		p.error(p.pos(), "invalid label name %q", name)
		return
	}
	if _, ok := vm.LookupName(name); ok {
		p.error(p.pos(), "label name %s is a mnemonic", name)
		return
	}
	if _, ok := p.consts[name]; ok {
		p.error(p.pos(), "label redefinition: %s, previously defined as a constant", name)
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(p.pos(), "label redefinition: %s, previous definition here: %s", name, l.pos)
			return
		}
		l.address = len(p.img)
		l.pos = p.pos()
		return
	}
	p.labels[name] = &label{labelSite{p.pos(), len(p.img)}, nil}
}

// value writes the value of a literal, constant or label reference.
func (p *parser) value(s string) {
	switch {
	case s == "":
		p.error(p.pos(), "missing operand value")
		p.write(new(big.Int))
	case isName(s):
		if v, ok := p.consts[s]; ok {
			p.write(new(big.Int).Set(v))
			return
		}
		if _, ok := vm.LookupName(s); ok {
			p.error(p.pos(), "unexpected mnemonic %s", s)
			p.write(new(big.Int))
			return
		}
		p.useLabel(s)
		p.write(new(big.Int))
	default:
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			p.error(p.pos(), "invalid integer %s", s)
			v = new(big.Int)
		}
		p.write(v)
	}
}

func (p *parser) operand(s string) {
	m := vm.ModePosition
	switch s[0] {
	case '#':
		m, s = vm.ModeImmediate, s[1:]
	case '~':
		m, s = vm.ModeRelative, s[1:]
	}
	p.modes[p.nArg] = m
	p.nArg++
	p.value(s)
	if p.nArg == p.ins.Operands {
		p.endInstruction()
	}
}

func (p *parser) startInstruction(ins vm.Instruction) {
	p.ins = ins
	p.insAddr = len(p.img)
	p.modes = vm.Modes{}
	p.nArg = 0
	p.write(new(big.Int))
	if ins.Operands == 0 {
		p.endInstruction()
		return
	}
	p.state = stateOperand
}

func (p *parser) endInstruction() {
	p.img[p.insAddr] = vm.Encode(p.ins.Op, p.modes)
	p.state = stateStmt
}

func (p *parser) directive(s string) {
	switch s {
	case ".dat":
		p.state = stateDat
	case ".equ":
		p.state = stateEquName
	default:
		p.error(p.pos(), "unknown directive %s", s)
	}
}

func (p *parser) equ(s string) {
	switch p.state {
	case stateEquName:
		// on error, still consume the value
		p.cstName = ""
		p.state = stateEquValue
		if !isName(s) {
			p.error(p.pos(), ".equ: invalid constant name %q", s)
			return
		}
		if _, ok := vm.LookupName(s); ok {
			p.error(p.pos(), ".equ: constant name %s is a mnemonic", s)
			return
		}
		if l, ok := p.labels[s]; ok {
			p.error(p.pos(), ".equ: redefinition of %s, previously defined or used as a label here: %s", s, l.pos)
			return
		}
		p.cstName = s
	case stateEquValue:
		p.state = stateStmt
		if p.cstName == "" {
			return
		}
		if v, ok := p.consts[s]; ok {
			p.consts[p.cstName] = v
			return
		}
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			p.error(p.pos(), ".equ: invalid value %s", s)
			return
		}
		p.consts[p.cstName] = v
	}
}

// skipComment consumes tokens up to and including the closing parenthesis.
func (p *parser) skipComment() {
	start := p.pos()
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if p.s.TokenText() == ")" {
			return
		}
	}
	p.error(start, "unterminated comment")
}

func (p *parser) token(s string) {
	switch p.state {
	case stateOperand:
		if s[0] == ':' || s[0] == '.' {
			p.error(p.pos(), "%s: missing operand %d, got %s", p.ins.Name, p.nArg+1, s)
			p.endInstruction()
			break
		}
		p.operand(s)
		return
	case stateEquName, stateEquValue:
		p.equ(s)
		return
	}

	switch {
	case s[0] == ':':
		p.defineLabel(s[1:])
		p.state = stateStmt
		return
	case s[0] == '.':
		p.directive(s)
		return
	}
	if ins, ok := vm.LookupName(s); ok {
		p.startInstruction(ins)
		return
	}
	if p.state == stateDat {
		p.value(s)
		return
	}
	p.error(p.pos(), "unexpected %s, expected mnemonic, label or directive", s)
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(p.pos(), "%s", msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		s := p.s.TokenText()
		switch {
		case tok == ',':
			continue
		case tok != scanner.Ident:
			p.error(p.pos(), "unexpected character %q", tok)
			continue
		case s == "(":
			p.skipComment()
			continue
		}
		p.token(s)
	}

	switch p.state {
	case stateOperand:
		p.error(p.pos(), "%s: expected %d operands, got %d", p.ins.Name, p.ins.Operands, p.nArg)
		p.endInstruction()
	case stateEquName, stateEquValue:
		p.error(p.pos(), ".equ: unexpected end of input")
	}

	// sort for stable error output
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label %s", n)
			continue
		}
		for _, u := range l.uses {
			p.img[u.address] = big.NewInt(int64(l.address))
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
