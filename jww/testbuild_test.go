package jww

import (
	"bytes"
	"encoding/binary"
	"math"
)

// testBuf is a small little-endian byte-stream builder used to construct
// synthetic JWW fixtures for the parser tests in this package.
type testBuf struct {
	bytes.Buffer
}

func (b *testBuf) u8(v byte) *testBuf {
	b.WriteByte(v)
	return b
}

func (b *testBuf) u16(v uint16) *testBuf {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.Write(tmp[:])
	return b
}

func (b *testBuf) u32(v uint32) *testBuf {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
	return b
}

func (b *testBuf) f64(v float64) *testBuf {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.Write(tmp[:])
	return b
}

// cstr writes a short (< 0xFF byte) ASCII string using the 1-byte length
// tier of the tri-encoded CString format.
func (b *testBuf) cstr(s string) *testBuf {
	b.u8(byte(len(s)))
	b.WriteString(s)
	return b
}

func (b *testBuf) raw(p []byte) *testBuf {
	b.Write(p)
	return b
}

func (b *testBuf) zeros(n int) *testBuf {
	b.Write(make([]byte, n))
	return b
}

// minimalHeader writes a complete fixed-size JWW header (signature through
// the 16 layer groups' state/write/scale/protect/layer-cell fields) for the
// given version, with an empty memo and all layer-group fields zeroed.
func minimalHeader(b *testBuf, version uint32) {
	b.raw([]byte("JwwData."))
	b.u32(version)
	b.cstr("") // memo
	b.u32(0)   // paper size
	b.u32(0)   // write layer group
	for g := 0; g < 16; g++ {
		b.u32(0)   // state
		b.u32(0)   // write layer
		b.f64(1.0) // scale
		b.u32(0)   // protect
		for l := 0; l < 16; l++ {
			b.u32(0) // layer state
			b.u32(0) // layer protect
		}
	}
}

// classEntry writes a 0xFFFF class-registration record: schema (matching
// version), name length, name bytes.
func (b *testBuf) classEntry(version uint32, name string) *testBuf {
	b.u16(0xFFFF)
	b.u16(uint16(version))
	b.u16(uint16(len(name)))
	b.WriteString(name)
	return b
}
