// Package ieee754 decodes the little-endian IEEE 754 bit patterns used for
// float immediates in the WebAssembly binary format.
//
// See https://www.w3.org/TR/wasm-core-1/#floating-point%E2%91%A4
package ieee754

import (
	"encoding/binary"
	"io"
	"math"
)

// DecodeFloat32 reads 4 bytes and reinterprets them as a float32.
func DecodeFloat32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// DecodeFloat64 reads 8 bytes and reinterprets them as a float64.
func DecodeFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}
