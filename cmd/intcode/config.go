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

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/layer"
	"github.com/pkg/errors"
)

const defaultConfigFile = "intcode.toml"

// Config is the contents of an intcode.toml file. Command line flags override
// its values.
type Config struct {
	Program              string      `toml:"program"`
	Inputs               []int64     `toml:"inputs"`
	Trace                bool        `toml:"trace"`
	RelativeDestinations bool        `toml:"relative-destinations"`
	Verbosity            int         `toml:"verbosity"`
	Layers               LayerConfig `toml:"layers"`
	Chain                ChainConfig `toml:"chain"`

	// Dir is the directory of the config file. Relative paths in the file
	// are resolved against it.
	Dir string `toml:"-"`
}

// LayerConfig configures the layers command.
type LayerConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ChainConfig configures the chain command.
type ChainConfig struct {
	Phases   []int64 `toml:"phases"`
	Feedback bool    `toml:"feedback"`
}

func defaultConfig() *Config {
	return &Config{
		Layers: LayerConfig{Width: layer.DefaultWidth, Height: layer.DefaultHeight},
	}
}

// loadConfig loads the named config file. If name is empty, it tries
// intcode.toml in the current directory and falls back to the defaults if
// there is no such file.
func loadConfig(name string) (*Config, error) {
	c := defaultConfig()
	explicit := name != ""
	if !explicit {
		name = defaultConfigFile
	}
	md, err := toml.DecodeFile(name, c)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrapf(err, "config %s", name)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("config %s: unknown keys %v", name, keys)
	}
	c.Dir = filepath.Dir(name)
	return c, nil
}

// ProgramPath returns the path of the configured program file.
func (c *Config) ProgramPath() string {
	if c.Program == "" || filepath.IsAbs(c.Program) {
		return c.Program
	}
	return filepath.Join(c.Dir, c.Program)
}
