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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("intcode")

type app struct {
	cfgFile   string
	verbosity int
	debug     bool
	cfg       *Config
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intcode",
		Short:         "Run, chain, assemble and disassemble Intcode programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = c
			if !cmd.Flags().Changed("verbose") {
				a.verbosity = c.Verbosity
			}
			commonlog.Configure(a.verbosity, nil)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "load configuration from `file` (default ./"+defaultConfigFile+" if present)")
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (can be repeated)")
	pf.BoolVar(&a.debug, "debug", false, "print stack traces on errors")

	root.AddCommand(
		a.runCmd(),
		a.resumeCmd(),
		a.chainCmd(),
		a.layersCmd(),
		a.asmCmd(),
		a.disasmCmd(),
	)
	return root
}

func (a *app) atExit(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if a.debug {
		fmt.Fprintf(w, "%+v\n", err)
	} else {
		fmt.Fprintf(w, "%v\n", err)
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := new(app)
	err := a.rootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(a.atExit(os.Stderr, err))
}
