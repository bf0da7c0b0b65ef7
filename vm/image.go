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
	"bufio"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Image is an Intcode program: a flat sequence of integers.
type Image []*big.Int

// Ints returns an Image holding the given values.
func Ints(vs ...int64) Image {
	img := make(Image, len(vs))
	for k, v := range vs {
		img[k] = big.NewInt(v)
	}
	return img
}

// ParseImage parses a program in its text form: comma separated decimal
// integers. White space around values is ignored.
func ParseImage(r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ParseImage")
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil, errors.New("ParseImage: empty program")
	}
	fields := strings.Split(s, ",")
	img := make(Image, len(fields))
	for k, f := range fields {
		f = strings.TrimSpace(f)
		v, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, errors.Errorf("ParseImage: value #%d: invalid integer %q", k, f)
		}
		img[k] = v
	}
	return img, nil
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := ParseImage(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// WriteTo writes the text form of the image to w.
func (i Image) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	ew := ici.NewErrWriter(cw)
	ew.WriteInts(i, ",")
	return cw.n, ew.Err
}

// Save saves the text form of the image to file fileName, followed by a new
// line.
func (i Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "flush failed")
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = i.WriteTo(w); err != nil {
		return errors.Wrap(err, "save failed")
	}
	_, err = w.WriteString("\n")
	return errors.Wrap(err, "save failed")
}

func (i Image) String() string {
	var b strings.Builder
	i.WriteTo(&b)
	return b.String()
}

// Clone returns a deep copy of the image.
func (i Image) Clone() Image {
	c := make(Image, len(i))
	for k, v := range i {
		c[k] = new(big.Int)
		if v != nil {
			c[k].Set(v)
		}
	}
	return c
}

// Read implements Reader. Addresses beyond the end of the image read as 0.
func (i Image) Read(addr *big.Int) (*big.Int, error) {
	if addr.Sign() < 0 {
		return nil, errors.Wrapf(ErrNegativeAddress, "read %v", addr)
	}
	if addr.IsInt64() && addr.Int64() < int64(len(i)) && i[addr.Int64()] != nil {
		return new(big.Int).Set(i[addr.Int64()]), nil
	}
	return new(big.Int), nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return n, err
}
