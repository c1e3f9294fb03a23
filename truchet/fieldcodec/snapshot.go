// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet/noise"
	"github.com/klauspost/compress/zstd"
	"io"
)

var ErrSnapshot = errors.New("not a field snapshot")

var magic = [4]byte{'T', 'R', 'F', 'D'}

// maxSnapshotValues bounds allocation when reading untrusted snapshots.
const maxSnapshotValues = 1 << 28

type header struct {
	Magic  [4]byte
	Width  uint32
	Height uint32
}

// WriteSnapshot stores f exactly, zstd compressed.
func WriteSnapshot(w io.Writer, f *noise.Field) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}

	h := header{Magic: magic, Width: uint32(f.Width), Height: uint32(f.Height)}
	if err := binary.Write(enc, binary.LittleEndian, h); err != nil {
		enc.Close()
		return err
	}
	if err := binary.Write(enc, binary.LittleEndian, f.Values); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads a field written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*noise.Field, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var h header
	if err := binary.Read(dec, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	if h.Magic != magic {
		return nil, ErrSnapshot
	}
	if h.Width == 0 || h.Height == 0 || uint64(h.Width)*uint64(h.Height) > maxSnapshotValues {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrSnapshot, h.Width, h.Height)
	}

	f := noise.NewField(int(h.Width), int(h.Height))
	if err := binary.Read(dec, binary.LittleEndian, f.Values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return f, nil
}
