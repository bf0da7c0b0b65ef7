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

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrInputExhausted is returned when the VM needs input after the end of
// stdin and no snapshot file was given.
var ErrInputExhausted = errors.New("end of input while waiting for input")

// runFlags are shared by the run and resume commands.
type runFlags struct {
	inputs  []string
	trace   bool
	relDest bool
	dump    bool
	save    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "add `values` to the input queue (can be repeated)")
	fs.BoolVar(&f.trace, "trace", false, "disassemble each instruction to stderr before executing it")
	fs.BoolVar(&f.relDest, "relative-dest", false, "apply relative mode to destination operands")
	fs.BoolVar(&f.dump, "dump", false, "dump the VM state to stderr upon exit")
	fs.StringVar(&f.save, "save", "", "save a snapshot to `file` if input runs out while the VM waits for input")
}

// options returns VM options from the command flags. The run command falls
// back to the config file for flags not set on the command line.
func (f *runFlags) options(cmd *cobra.Command, cfg *Config) ([]vm.Option, error) {
	fs := cmd.Flags()
	var (
		vals []*big.Int
		err  error
	)
	if fs.Changed("input") {
		vals, err = parseInputs(f.inputs)
		if err != nil {
			return nil, err
		}
	} else if cmd.Name() == "run" {
		for _, v := range cfg.Inputs {
			vals = append(vals, big.NewInt(v))
		}
	}
	opts := []vm.Option{vm.Input(vals...)}

	trace := f.trace
	if !fs.Changed("trace") {
		trace = cfg.Trace
	}
	if trace {
		opts = append(opts, vm.Trace(tracer(cmd.ErrOrStderr())))
	}
	if fs.Changed("relative-dest") {
		opts = append(opts, vm.RelativeDestinations(f.relDest))
	} else if cmd.Name() == "run" && cfg.RelativeDestinations {
		opts = append(opts, vm.RelativeDestinations(true))
	}
	return opts, nil
}

func tracer(w io.Writer) func(*vm.Instance) {
	return func(i *vm.Instance) {
		pc := i.PC()
		fmt.Fprintf(w, "%6v\t", pc)
		if _, err := asm.Disassemble(i.Memory(), pc, w); err != nil {
			fmt.Fprintf(w, "(%v)", err)
		}
		fmt.Fprintf(w, "\trb=%v\n", i.RelativeBase())
	}
}

// drive runs the VM with start, then feeds it input from stdin each time it
// gets interrupted, until it halts or stdin runs out. Outputs are printed one
// per line.
func (f *runFlags) drive(cmd *cobra.Command, i *vm.Instance, start func() error) (err error) {
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if ferr := out.Flush(); err == nil {
			err = errors.Wrap(ferr, "write output")
		}
		if f.dump {
			i.Dump(cmd.ErrOrStderr())
		}
	}()

	var in inputReader
	defer func() {
		if in != nil {
			in.Close()
		}
	}()

	err = start()
	for {
		for i.HasOutput() {
			v, _ := i.ReadOutput()
			fmt.Fprintln(out, v)
		}
		if err != nil || i.Halted() {
			return err
		}
		if err = cmd.Context().Err(); err != nil {
			return err
		}

		log.Debugf("waiting for input at pc %v", i.PC())
		if in == nil {
			in = newInput(cmd.InOrStdin())
		}
		if err = out.Flush(); err != nil {
			return errors.Wrap(err, "write output")
		}
		vals, rerr := in.Next()
		if rerr == io.EOF {
			if f.save == "" {
				return errors.Wrapf(ErrInputExhausted, "pc %v", i.PC())
			}
			log.Infof("saving snapshot to %s", f.save)
			return i.Snapshot().Save(f.save)
		}
		if rerr != nil {
			return rerr
		}
		if len(vals) == 0 {
			continue
		}
		i.AddInput(vals...)
		err = i.Resume()
	}
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [flags] [program]",
		Short: "Run an Intcode program",
		Long: `Run loads a program and runs it. Whenever the program waits for input,
a line of values is read from stdin, with a readline prompt if stdin is a
terminal. Outputs are printed one per line.

If no program is given, the program from the config file is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.programArg(args)
			if err != nil {
				return err
			}
			opts, err := f.options(cmd, a.cfg)
			if err != nil {
				return err
			}
			i, err := vm.New(img, opts...)
			if err != nil {
				return err
			}
			return f.drive(cmd, i, i.Run)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) resumeCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "resume [flags] snapshot",
		Short: "Resume a VM from a snapshot",
		Long: `Resume restores a VM saved with run --save, adds the given inputs and
resumes it. It then behaves like run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := vm.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			opts, err := f.options(cmd, a.cfg)
			if err != nil {
				return err
			}
			i, err := vm.Restore(s, opts...)
			if err != nil {
				return err
			}
			return f.drive(cmd, i, i.Resume)
		},
	}
	f.register(cmd)
	return cmd
}
