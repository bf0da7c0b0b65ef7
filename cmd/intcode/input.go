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

package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// inputReader supplies input values to an interrupted VM. Next returns io.EOF
// when no more input is available.
type inputReader interface {
	Next() ([]*big.Int, error)
	Close() error
}

// parseValues parses a list of integers separated by white space or commas.
func parseValues(line string) ([]*big.Int, error) {
	fs := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	vs := make([]*big.Int, 0, len(fs))
	for _, f := range fs {
		v, ok := new(big.Int).SetString(f, 0)
		if !ok {
			return nil, errors.Errorf("invalid integer %q", f)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func parseInputs(ss []string) ([]*big.Int, error) {
	var vs []*big.Int
	for _, s := range ss {
		v, err := parseValues(s)
		if err != nil {
			return nil, errors.Wrap(err, "input")
		}
		vs = append(vs, v...)
	}
	return vs, nil
}

type lineInput struct {
	s    *bufio.Scanner
	line int
}

func (l *lineInput) Next() ([]*big.Int, error) {
	if !l.s.Scan() {
		if err := l.s.Err(); err != nil {
			return nil, errors.Wrap(err, "read input")
		}
		return nil, io.EOF
	}
	l.line++
	vs, err := parseValues(l.s.Text())
	return vs, errors.Wrapf(err, "input line %d", l.line)
}

func (l *lineInput) Close() error { return nil }

type ttyInput struct {
	rl *readline.Instance
}

func (t *ttyInput) Next() ([]*big.Int, error) {
	for {
		line, err := t.rl.Readline()
		if err == readline.ErrInterrupt {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		vs, err := parseValues(line)
		if err == nil {
			return vs, nil
		}
		fmt.Fprintln(t.rl.Stderr(), err)
	}
}

func (t *ttyInput) Close() error { return t.rl.Close() }

// newInput returns a readline based reader if r is a terminal, or a plain line
// reader otherwise.
func newInput(r io.Reader) inputReader {
	if f, ok := r.(*os.File); ok && isTerminal(f.Fd()) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "input> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "^D",
		})
		if err == nil {
			return &ttyInput{rl}
		}
		log.Warningf("readline unavailable: %v", err)
	}
	return &lineInput{s: bufio.NewScanner(r)}
}
