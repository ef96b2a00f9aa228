// Package leb128 decodes and encodes the LEB128 variable-width integers used
// for all integer immediates in the WebAssembly binary format.
//
// See https://www.w3.org/TR/wasm-core-1/#integers%E2%91%A4
package leb128

import (
	"fmt"
	"io"
)

const (
	continuationBit = 0x80
	payloadMask     = 0x7f
	signBit         = 0x40
)

// DecodeUint32 reads an unsigned 32-bit integer encoded in unsigned LEB128.
func DecodeUint32(r io.Reader) (ret uint32, err error) {
	for shift := 0; shift < 35; shift += 7 {
		b, err := readByte(r)
		if err != nil {
			return 0, fmt.Errorf("readByte failed: %w", err)
		}
		ret |= uint32(b&payloadMask) << shift
		if b&continuationBit == 0 {
			break
		}
	}
	return ret, nil
}

// DecodeUint64 reads an unsigned 64-bit integer encoded in unsigned LEB128.
func DecodeUint64(r io.Reader) (ret uint64, err error) {
	for shift := 0; shift < 64; shift += 7 {
		b, err := readByte(r)
		if err != nil {
			return 0, fmt.Errorf("readByte failed: %w", err)
		}
		ret |= uint64(b&payloadMask) << shift
		if b&continuationBit == 0 {
			break
		}
	}
	return ret, nil
}

// DecodeInt32 reads a signed 32-bit integer encoded in signed LEB128.
func DecodeInt32(r io.Reader) (ret int32, err error) {
	var shift int
	var b byte
	for shift < 35 {
		b, err = readByte(r)
		if err != nil {
			return 0, fmt.Errorf("readByte failed: %w", err)
		}
		ret |= int32(b&payloadMask) << shift
		shift += 7
		if b&continuationBit == 0 {
			break
		}
	}
	// Sign-extend when the final group's sign bit is set.
	if shift < 32 && b&signBit == signBit {
		ret |= ^0 << shift
	}
	return ret, nil
}

// DecodeInt64 reads a signed 64-bit integer encoded in signed LEB128.
func DecodeInt64(r io.Reader) (ret int64, err error) {
	var shift int
	var b byte
	for shift < 64 {
		b, err = readByte(r)
		if err != nil {
			return 0, fmt.Errorf("readByte failed: %w", err)
		}
		ret |= int64(b&payloadMask) << shift
		shift += 7
		if b&continuationBit == 0 {
			break
		}
	}
	if shift < 64 && b&signBit == signBit {
		ret |= ^0 << shift
	}
	return ret, nil
}

// EncodeUint32 returns the unsigned LEB128 encoding of v.
func EncodeUint32(v uint32) []byte {
	return EncodeUint64(uint64(v))
}

// EncodeUint64 returns the unsigned LEB128 encoding of v.
func EncodeUint64(v uint64) (out []byte) {
	for {
		b := byte(v & payloadMask)
		v >>= 7
		if v != 0 {
			b |= continuationBit
		}
		out = append(out, b)
		if v == 0 {
			return
		}
	}
}

// EncodeInt32 returns the signed LEB128 encoding of v.
func EncodeInt32(v int32) []byte {
	return EncodeInt64(int64(v))
}

// EncodeInt64 returns the signed LEB128 encoding of v.
func EncodeInt64(v int64) (out []byte) {
	for {
		b := byte(v & payloadMask)
		v >>= 7
		if (v == 0 && b&signBit == 0) || (v == -1 && b&signBit == signBit) {
			return append(out, b)
		}
		out = append(out, b|continuationBit)
	}
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}
