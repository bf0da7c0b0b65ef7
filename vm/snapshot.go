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

package vm

import (
	"fmt"
	"math/big"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Cell is an address/value pair of the sparse store.
type Cell struct {
	Addr  *big.Int `cbor:"a"`
	Value *big.Int `cbor:"v"`
}

// Snapshot is the complete state of a VM. It can be used to persist a VM that
// is waiting for input and continue it later, possibly in another process.
type Snapshot struct {
	Memory      Image      `cbor:"mem"`
	Sparse      []Cell     `cbor:"sparse,omitempty"`
	PC          *big.Int   `cbor:"pc"`
	RB          *big.Int   `cbor:"rb"`
	Input       []*big.Int `cbor:"in,omitempty"`
	InPos       int        `cbor:"inpos"`
	Output      []*big.Int `cbor:"out,omitempty"`
	OutPos      int        `cbor:"outpos"`
	Halted      bool       `cbor:"halted"`
	Interrupted bool       `cbor:"interrupted"`
	RelDest     bool       `cbor:"reldest"`
}

// snapshot has no methods so that the encoder does not pick up MarshalBinary.
type snapshot Snapshot

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot returns a deep copy of the VM state.
func (i *Instance) Snapshot() *Snapshot {
	s := &Snapshot{
		Memory:      i.mem.Dense(),
		PC:          i.PC(),
		RB:          i.RelativeBase(),
		Input:       Image(i.input).Clone(),
		InPos:       i.inPos,
		Output:      i.Outputs(),
		OutPos:      i.outPos,
		Halted:      i.halted,
		Interrupted: i.interrupted,
		RelDest:     i.relDest,
	}
	i.mem.EachSparse(func(addr, v *big.Int) bool {
		s.Sparse = append(s.Sparse, Cell{addr, v})
		return true
	})
	return s
}

// MarshalBinary encodes the snapshot as canonical CBOR.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	b, err := cborEncMode.Marshal((*snapshot)(s))
	return b, errors.Wrap(err, "snapshot marshal")
}

// UnmarshalSnapshot decodes a CBOR encoded snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, (*snapshot)(&s)); err != nil {
		return nil, errors.Wrap(err, "snapshot unmarshal")
	}
	return &s, nil
}

// LoadSnapshot reads a CBOR encoded snapshot from file fileName.
func LoadSnapshot(fileName string) (*Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadSnapshot")
	}
	return UnmarshalSnapshot(data)
}

// Save writes the CBOR encoded snapshot to file fileName.
func (s *Snapshot) Save(fileName string) (err error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "snapshot save")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "snapshot save")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = f.Write(b)
	return errors.Wrap(err, "snapshot save")
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// Restore creates a new VM instance from a snapshot. The options are applied
// after the snapshot state, so that Logger or Trace can be set on the restored
// instance.
func Restore(s *Snapshot, opts ...Option) (*Instance, error) {
	if s.InPos < 0 || s.InPos > len(s.Input) {
		return nil, errors.Errorf("Restore: input position %d out of range", s.InPos)
	}
	if s.OutPos < 0 || s.OutPos > len(s.Output) {
		return nil, errors.Errorf("Restore: output position %d out of range", s.OutPos)
	}
	i, err := New(s.Memory)
	if err != nil {
		return nil, err
	}
	for _, c := range s.Sparse {
		addr := nonNil(c.Addr)
		if addr.Cmp(big.NewInt(int64(i.mem.Len()))) < 0 {
			return nil, errors.Errorf("Restore: sparse address %v inside dense store", addr)
		}
		if err := i.mem.Write(addr, nonNil(c.Value)); err != nil {
			return nil, errors.Wrap(err, "Restore")
		}
	}
	i.pc = nonNil(s.PC)
	if i.pc.Sign() < 0 {
		return nil, errors.Errorf("Restore: negative pc %v", i.pc)
	}
	i.rb = nonNil(s.RB)
	i.input = Image(s.Input).Clone()
	i.inPos = s.InPos
	i.output = Image(s.Output).Clone()
	i.outPos = s.OutPos
	i.halted = s.Halted
	i.interrupted = s.Interrupted
	i.relDest = s.RelDest
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}
