package ieee754

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFloat32(t *testing.T) {
	for _, c := range []struct {
		bytes []byte
		exp   float32
	}{
		{bytes: []byte{0x00, 0x00, 0x00, 0x00}, exp: 0},
		{bytes: []byte{0x00, 0x00, 0x80, 0x3f}, exp: 1.0},
		{bytes: []byte{0x00, 0x00, 0x80, 0xbf}, exp: -1.0},
		{bytes: []byte{0xdb, 0x0f, 0x49, 0x40}, exp: 3.1415927},
		{bytes: []byte{0x00, 0x00, 0x80, 0x7f}, exp: float32(math.Inf(1))},
	} {
		actual, err := DecodeFloat32(bytes.NewReader(c.bytes))
		require.NoError(t, err)
		assert.Equal(t, c.exp, actual)
	}
}

func TestDecodeFloat64(t *testing.T) {
	for _, c := range []struct {
		bytes []byte
		exp   float64
	}{
		{bytes: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, exp: 0},
		{bytes: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f}, exp: 1.0},
		{bytes: []byte{0x18, 0x2d, 0x44, 0x54, 0xfb, 0x21, 0x09, 0x40}, exp: 3.141592653589793},
		{bytes: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0xff}, exp: math.Inf(-1)},
	} {
		actual, err := DecodeFloat64(bytes.NewReader(c.bytes))
		require.NoError(t, err)
		assert.Equal(t, c.exp, actual)
	}
}

func TestDecode_TruncatedInput(t *testing.T) {
	_, err := DecodeFloat32(bytes.NewReader([]byte{0x00, 0x00}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = DecodeFloat64(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x00}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = DecodeFloat32(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}
