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
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/intcode/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_default(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, layer.DefaultWidth, c.Layers.Width)
	assert.Equal(t, layer.DefaultHeight, c.Layers.Height)
	assert.Empty(t, c.ProgramPath())

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	name := writeFile(t, dir, "intcode.toml", `
program = "prog.txt"
inputs = [1, -2]
trace = true
relative-destinations = true
verbosity = 2

[layers]
width = 3

[chain]
phases = [5, 6]
feedback = true
`)
	c, err := loadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prog.txt"), c.ProgramPath())
	assert.Equal(t, []int64{1, -2}, c.Inputs)
	assert.True(t, c.Trace)
	assert.True(t, c.RelativeDestinations)
	assert.Equal(t, 2, c.Verbosity)
	assert.Equal(t, 3, c.Layers.Width)
	assert.Equal(t, layer.DefaultHeight, c.Layers.Height)
	assert.Equal(t, []int64{5, 6}, c.Chain.Phases)
	assert.True(t, c.Chain.Feedback)

	c.Program = "/abs/prog.txt"
	assert.Equal(t, "/abs/prog.txt", c.ProgramPath())
}

func TestLoadConfig_errors(t *testing.T) {
	dir := t.TempDir()
	_, err := loadConfig(writeFile(t, dir, "unknown.toml", "programme = \"x\"\n"))
	assert.Error(t, err)
	_, err = loadConfig(writeFile(t, dir, "bad.toml", "inputs = [\n"))
	assert.Error(t, err)
	_, err = loadConfig(writeFile(t, dir, "type.toml", "trace = 1\n"))
	assert.Error(t, err)
}
