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
	"fmt"
	"io"
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/chain"
	"github.com/db47h/intcode/layer"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// programArg returns the program named on the command line or in the config
// file.
func (a *app) programArg(args []string) (vm.Image, error) {
	name := a.cfg.ProgramPath()
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return nil, errors.New("no program file")
	}
	return vm.Load(name)
}

func (a *app) chainCmd() *cobra.Command {
	var (
		feedback bool
		phases   []int64
	)
	cmd := &cobra.Command{
		Use:   "chain [flags] [program]",
		Short: "Find the phase settings giving the highest chain signal",
		Long: `Chain runs copies of the program connected output to input, one per phase
setting, for every permutation of the phase settings, and prints the highest
signal out of the last stage.

The default phases are 0,1,2,3,4, or 5,6,7,8,9 with --feedback.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.programArg(args)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if !fs.Changed("feedback") {
				feedback = a.cfg.Chain.Feedback
			}
			if !fs.Changed("phases") {
				switch {
				case len(a.cfg.Chain.Phases) > 0:
					phases = a.cfg.Chain.Phases
				case feedback:
					phases = []int64{5, 6, 7, 8, 9}
				default:
					phases = []int64{0, 1, 2, 3, 4}
				}
			}
			r, err := chain.MaxSignal(cmd.Context(), img, phases, feedback)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%v %v\n", r.Signal, r.Phases)
			return errors.Wrap(err, "write output")
		},
	}
	cmd.Flags().BoolVar(&feedback, "feedback", false, "feed the output of the last stage back to the first one")
	cmd.Flags().Int64SliceVar(&phases, "phases", nil, "comma separated phase `settings`")
	return cmd
}

func (a *app) layersCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "layers [flags] image",
		Short: "Decode a layered image",
		Long: `Layers reads an image made of decimal digits, prints its checksum on the
first line, then the rendered image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Layers.Width
			}
			if !cmd.Flags().Changed("height") {
				height = a.cfg.Layers.Height
			}
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "layers")
			}
			defer f.Close()
			ds, err := layer.ParseDigits(f)
			if err != nil {
				return err
			}
			ls, err := layer.Decode(ds, width, height)
			if err != nil {
				return err
			}
			sum, err := layer.Checksum(ls)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err = fmt.Fprintln(w, sum); err != nil {
				return errors.Wrap(err, "write output")
			}
			return layer.Render(ls, w)
		},
	}
	cmd.Flags().IntVar(&width, "width", layer.DefaultWidth, "layer width")
	cmd.Flags().IntVar(&height, "height", layer.DefaultHeight, "layer height")
	return cmd
}

func (a *app) asmCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "asm [flags] source",
		Short: "Assemble a program",
		Long: `Asm assembles the source file and writes the program as comma separated
values to stdout, or to the file given with -o. Use - to read stdin.

See the documentation of package github.com/db47h/intcode/asm for the syntax.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var r io.Reader = cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return errors.Wrap(err, "asm")
				}
				defer f.Close()
				r = f
			}
			img, err := asm.Assemble(name, r)
			if err != nil {
				return err
			}
			if out != "" {
				return img.Save(out)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), img)
			return errors.Wrap(err, "write output")
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the program to `file`")
	return cmd
}

func (a *app) disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm [program]",
		Short: "Disassemble a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.programArg(args)
			if err != nil {
				return err
			}
			return asm.DisassembleAll(img, cmd.OutOrStdout())
		},
	}
}
