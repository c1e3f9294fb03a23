// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldcodec

import "io"

const (
	// A run is one byte: the sample's high nibble, then the run length - 1.
	sampleMask = 0xf0
	lengthMask = 0x0f
	maxRun     = lengthMask + 1
)

// Runs is the run length encoding of Preview.Data. Written samples keep only
// their high nibble, so neighbouring field values of similar height share a
// run. Reads decode from the start without consuming the encoding.
type Runs struct {
	data []byte
	// read position: run index and samples already taken from it
	run   int
	taken int
}

// Reset decodes data from the start. Runs keeps data, not a copy.
func (r *Runs) Reset(data []byte) {
	r.data = data
	r.run = 0
	r.taken = 0
}

// Grow reserves space for about n samples.
func (r *Runs) Grow(n int) {
	runs := n / 2
	if cap(r.data)-len(r.data) < runs {
		data := make([]byte, len(r.data), len(r.data)+runs)
		copy(data, r.data)
		r.data = data
	}
}

func (r *Runs) Write(samples []byte) (int, error) {
	for _, s := range samples {
		r.append(quantizeNibble(s))
	}
	return len(samples), nil
}

func (r *Runs) append(sample byte) {
	if last := len(r.data) - 1; last >= 0 {
		run := r.data[last]
		if run&sampleMask == sample && int(run&lengthMask)+1 < maxRun {
			r.data[last]++
			return
		}
	}
	r.data = append(r.data, sample)
}

func (r *Runs) Read(samples []byte) (int, error) {
	n := 0
	for n < len(samples) && r.run < len(r.data) {
		run := r.data[r.run]
		length := int(run&lengthMask) + 1

		for ; n < len(samples) && r.taken < length; n++ {
			samples[n] = run & sampleMask
			r.taken++
		}
		if r.taken == length {
			r.run++
			r.taken = 0
		}
	}

	if n == 0 && len(samples) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Bytes is the whole encoding, regardless of the read position.
func (r *Runs) Bytes() []byte {
	return r.data
}

// quantizeNibble keeps the 4 most significant bits of a sample.
func quantizeNibble(b byte) byte {
	return b & sampleMask
}
