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

// Package chain runs several Intcode VMs connected output to input.
//
// Every stage runs its own copy of the same program and receives its phase
// setting as first input. The signal is then passed from stage to stage. A
// chain never shares a VM between goroutines: Run and Feedback drive all their
// stages from the calling goroutine, and MaxSignal gives each permutation its
// own set of VMs.
package chain

import (
	"context"
	"math/big"
	"runtime"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// Errors returned by chain functions.
var (
	ErrNoStages = errors.New("no phase settings")
	ErrNoSignal = errors.New("stage produced no signal")
	ErrStalled  = errors.New("stage stalled waiting for input")
)

var log = commonlog.GetLogger("intcode.chain")

func newStages(program vm.Image, phases []int64) ([]*vm.Instance, error) {
	if len(phases) == 0 {
		return nil, ErrNoStages
	}
	vms := make([]*vm.Instance, len(phases))
	for k, p := range phases {
		i, err := vm.New(program, vm.Input(big.NewInt(p)))
		if err != nil {
			return nil, err
		}
		vms[k] = i
	}
	return vms, nil
}

// Run runs a linear chain. The first stage receives signal after its phase
// setting and the last value output by each stage is passed on to the next.
// It returns the last value output by the last stage.
//
// Every stage must run to completion: a stage left waiting for input makes
// Run return ErrStalled.
func Run(program vm.Image, phases []int64, signal *big.Int) (*big.Int, error) {
	vms, err := newStages(program, phases)
	if err != nil {
		return nil, err
	}
	for k, i := range vms {
		i.AddInput(signal)
		if err := i.Run(); err != nil {
			return nil, errors.Wrapf(err, "stage %d", k)
		}
		if !i.Halted() {
			return nil, errors.Wrapf(ErrStalled, "stage %d", k)
		}
		if !i.HasOutput() {
			return nil, errors.Wrapf(ErrNoSignal, "stage %d", k)
		}
		for i.HasOutput() {
			signal, _ = i.ReadOutput()
		}
	}
	return signal, nil
}

// Feedback runs a chain where the output of the last stage is fed back to the
// first one. Stages are run in turn until the last stage halts. It returns
// the last value output by the last stage.
//
// If no stage can make progress while the last stage has not halted,
// Feedback returns ErrStalled.
func Feedback(program vm.Image, phases []int64, signal *big.Int) (*big.Int, error) {
	vms, err := newStages(program, phases)
	if err != nil {
		return nil, err
	}
	n := len(vms)
	vms[0].AddInput(signal)
	started := make([]bool, n)
	var last *big.Int

	for !vms[n-1].Halted() {
		progress := false
		for k, i := range vms {
			switch {
			case !started[k]:
				started[k] = true
				err = i.Run()
			case !i.Halted() && i.PendingInput() > 0:
				err = i.Resume()
			default:
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "stage %d", k)
			}
			progress = true
			next := vms[(k+1)%n]
			for i.HasOutput() {
				v, _ := i.ReadOutput()
				next.AddInput(v)
				if k == n-1 {
					last = v
				}
			}
		}
		if !progress {
			return nil, ErrStalled
		}
	}
	if last == nil {
		return nil, errors.Wrapf(ErrNoSignal, "stage %d", n-1)
	}
	return last, nil
}

// Result is the outcome of MaxSignal.
type Result struct {
	Signal *big.Int
	Phases []int64
}

// MaxSignal tries every permutation of phases and returns the one producing
// the highest signal, starting from a zero input signal. Ties go to the first
// permutation in lexicographic order of positions in phases.
//
// Permutations are evaluated concurrently, up to GOMAXPROCS at a time. If ctx
// is cancelled, MaxSignal stops scheduling new permutations and returns the
// context error.
func MaxSignal(ctx context.Context, program vm.Image, phases []int64, feedback bool) (*Result, error) {
	if len(phases) == 0 {
		return nil, ErrNoStages
	}
	run := Run
	if feedback {
		run = Feedback
	}

	var (
		mu      sync.Mutex
		best    *Result
		bestIdx int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// permutations are generated as workers become available
	permute(phases, func(idx int, p []int64) bool {
		if gctx.Err() != nil {
			return false
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := run(program, p, new(big.Int))
			if err != nil {
				return errors.Wrapf(err, "phases %v", p)
			}
			log.Debugf("phases %v: signal %v", p, s)
			mu.Lock()
			defer mu.Unlock()
			if best == nil || s.Cmp(best.Signal) > 0 || (s.Cmp(best.Signal) == 0 && idx < bestIdx) {
				best, bestIdx = &Result{Signal: s, Phases: p}, idx
			}
			return nil
		})
		return true
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return best, nil
}

// Permutations returns all permutations of vs in lexicographic order of the
// positions of its elements.
func Permutations(vs []int64) [][]int64 {
	var res [][]int64
	permute(vs, func(_ int, p []int64) bool {
		res = append(res, p)
		return true
	})
	return res
}

// permute calls yield with the index and a fresh copy of each permutation of
// vs, in the same order as Permutations. It stops as soon as yield returns
// false.
func permute(vs []int64, yield func(idx int, p []int64) bool) {
	var (
		idx  int
		cur  = make([]int64, 0, len(vs))
		used = make([]bool, len(vs))
		gen  func() bool
	)
	gen = func() bool {
		if len(cur) == len(vs) {
			ok := yield(idx, append([]int64(nil), cur...))
			idx++
			return ok
		}
		for k, v := range vs {
			if used[k] {
				continue
			}
			used[k] = true
			cur = append(cur, v)
			ok := gen()
			cur = cur[:len(cur)-1]
			used[k] = false
			if !ok {
				return false
			}
		}
		return true
	}
	gen()
}
