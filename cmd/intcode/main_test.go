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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	doubler  = "3,9,1002,9,2,9,4,9,99,0"
	doubling = "3,15,1006,15,14,1002,15,2,15,4,15,1105,1,0,99,0" // until it reads 0
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	a := new(app)
	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, dir, "doubler.txt", doubler+"\n")

	out, _, err := execute(t, "", "run", "-i", "21", prog)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	out, _, err = execute(t, "21\n", "run", prog)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	prog = writeFile(t, dir, "doubling.txt", doubling)
	out, _, err = execute(t, "1\n\n2, 3\n0\n", "run", prog)
	require.NoError(t, err)
	assert.Equal(t, "2\n4\n6\n", out)

	out, _, err = execute(t, "1\n", "run", prog)
	assert.Equal(t, ErrInputExhausted, errors.Cause(err))
	assert.Equal(t, "2\n", out)

	_, _, err = execute(t, "x\n", "run", prog)
	assert.Error(t, err)
	_, _, err = execute(t, "", "run", "-i", "0x", prog)
	assert.Error(t, err)
	_, _, err = execute(t, "", "run")
	assert.Error(t, err)
}

func TestRun_traceDump(t *testing.T) {
	prog := writeFile(t, t.TempDir(), "doubler.txt", doubler)
	out, stderr, err := execute(t, "", "run", "--trace", "--dump", "-i", "4", prog)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
	assert.Contains(t, stderr, "     2\tmul 9 #2 9\trb=0\n")
	assert.Contains(t, stderr, "state=halted")
}

func TestRun_config(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doubler.txt", doubler)
	cfg := writeFile(t, dir, "intcode.toml", "program = \"doubler.txt\"\ninputs = [50]\n")

	out, _, err := execute(t, "", "-c", cfg, "run")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)

	// flags override the config file
	out, _, err = execute(t, "", "-c", cfg, "run", "-i", "1")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestResume(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, dir, "doubling.txt", doubling)
	snap := filepath.Join(dir, "vm.snap")

	out, _, err := execute(t, "", "run", "--save", snap, "-i", "5", prog)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
	_, err = os.Stat(snap)
	require.NoError(t, err)

	out, _, err = execute(t, "", "resume", "-i", "7,0", snap)
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)

	out, _, err = execute(t, "8\n0\n", "resume", snap)
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)
}

func TestChain(t *testing.T) {
	dir := t.TempDir()
	prog := writeFile(t, dir, "amp.txt", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	out, _, err := execute(t, "", "chain", prog)
	require.NoError(t, err)
	assert.Equal(t, "43210 [4 3 2 1 0]\n", out)

	prog = writeFile(t, dir, "feedback.txt", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	out, _, err = execute(t, "", "chain", "--feedback", prog)
	require.NoError(t, err)
	assert.Equal(t, "139629729 [9 8 7 6 5]\n", out)

	out, _, err = execute(t, "", "chain", "--feedback", "--phases", "9,8,7,6,5", prog)
	require.NoError(t, err)
	assert.Equal(t, "139629729 [9 8 7 6 5]\n", out)
}

func TestLayers(t *testing.T) {
	img := writeFile(t, t.TempDir(), "image.txt", "0222112222120000\n")
	out, _, err := execute(t, "", "layers", "--width", "2", "--height", "2", img)
	require.NoError(t, err)
	assert.Equal(t, "4\n #\n# \n", out)

	_, _, err = execute(t, "", "layers", img)
	assert.Error(t, err)
}

func TestAsm(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "double.s", "in x mul x #2 x out x hlt :x .dat 0\n")
	out, _, err := execute(t, "", "asm", src)
	require.NoError(t, err)
	assert.Equal(t, doubler+"\n", out)

	out, _, err = execute(t, "out #1 hlt", "asm", "-")
	require.NoError(t, err)
	assert.Equal(t, "104,1,99\n", out)

	prog := filepath.Join(dir, "double.txt")
	_, _, err = execute(t, "", "asm", "-o", prog, src)
	require.NoError(t, err)
	out, _, err = execute(t, "", "run", "-i", "3", prog)
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)

	_, _, err = execute(t, "foo", "asm", "-")
	assert.Error(t, err)
}

func TestDisasm(t *testing.T) {
	prog := writeFile(t, t.TempDir(), "add.txt", "1101,1,2,0,99")
	out, _, err := execute(t, "", "disasm", prog)
	require.NoError(t, err)
	assert.Equal(t, "     0\tadd #1 #2 0\n     4\thlt\n", out)
}
