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

// Package layer decodes layered images made of decimal digits.
//
// An image is a flat sequence of digits split into layers of width*height
// pixels, each layer stored row by row. The first layer is in front. When
// merging layers, 0 is black, 1 is white and 2 is transparent.
package layer

import (
	"bufio"
	"io"
	"math"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Default image size.
const (
	DefaultWidth  = 25
	DefaultHeight = 6
)

// Pixel colors.
const (
	Black       byte = 0
	White       byte = 1
	Transparent byte = 2
)

// ErrNoLayers is returned by functions requiring at least one layer.
var ErrNoLayers = errors.New("no layers")

// Layer is a single image layer.
type Layer struct {
	Width, Height int
	Pixels        []byte
}

// ParseDigits reads decimal digits from r and returns their values. Any other
// character is skipped.
func ParseDigits(r io.Reader) ([]byte, error) {
	var ds []byte
	br := bufio.NewReader(r)
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return ds, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "ParseDigits")
		}
		if c >= '0' && c <= '9' {
			ds = append(ds, c-'0')
		}
	}
}

// Decode splits digits into layers of the given size. The digits are not
// copied.
func Decode(digits []byte, width, height int) ([]*Layer, error) {
	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return nil, errors.Errorf("Decode: invalid layer size %dx%d", width, height)
	}
	sz := width * height
	if len(digits) == 0 {
		return nil, ErrNoLayers
	}
	if len(digits)%sz != 0 {
		return nil, errors.Errorf("Decode: %d digits is not a multiple of the layer size %dx%d", len(digits), width, height)
	}
	ls := make([]*Layer, 0, len(digits)/sz)
	for p := 0; p < len(digits); p += sz {
		ls = append(ls, &Layer{width, height, digits[p : p+sz : p+sz]})
	}
	return ls, nil
}

// Count returns the number of pixels with value d.
func (l *Layer) Count(d byte) int {
	n := 0
	for _, p := range l.Pixels {
		if p == d {
			n++
		}
	}
	return n
}

// Pixel returns the value of the pixel at column x, row y.
func (l *Layer) Pixel(x, y int) byte {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		panic(errors.Errorf("Pixel: (%d, %d) out of bounds", x, y))
	}
	return l.Pixels[y*l.Width+x]
}

// Checksum returns the number of 1 digits multiplied by the number of 2
// digits on the layer with the fewest 0 digits. Ties go to the front-most
// layer.
func Checksum(layers []*Layer) (int, error) {
	if len(layers) == 0 {
		return 0, ErrNoLayers
	}
	best := layers[0]
	zeros := best.Count(0)
	for _, l := range layers[1:] {
		if n := l.Count(0); n < zeros {
			best, zeros = l, n
		}
	}
	return best.Count(1) * best.Count(2), nil
}

// Merge composites the layers: each pixel takes the value of the front-most
// layer where it is not transparent.
func Merge(layers []*Layer) (*Layer, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	w, h := layers[0].Width, layers[0].Height
	for _, l := range layers[1:] {
		if l.Width != w || l.Height != h {
			return nil, errors.Errorf("Merge: layer size %dx%d, expected %dx%d", l.Width, l.Height, w, h)
		}
	}
	m := &Layer{w, h, make([]byte, w*h)}
	for k := range m.Pixels {
		m.Pixels[k] = Transparent
		for _, l := range layers {
			if p := l.Pixels[k]; p != Transparent {
				m.Pixels[k] = p
				break
			}
		}
	}
	return m, nil
}

// Render merges the layers and writes the result to w, one line per row.
// White pixels are drawn as '#', anything else as a space.
func Render(layers []*Layer, w io.Writer) error {
	m, err := Merge(layers)
	if err != nil {
		return err
	}
	ew := ici.NewErrWriter(w)
	row := make([]byte, m.Width+1)
	row[m.Width] = '\n'
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			row[x] = ' '
			if m.Pixel(x, y) == White {
				row[x] = '#'
			}
		}
		ew.Write(row)
	}
	return ew.Err
}
