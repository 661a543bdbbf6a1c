// Package jww provides types and parsing functions for Jw_cad (JWW) files.
//
// Jw_cad is a popular 2D CAD software in Japan that uses the JWW binary file format.
// This package handles the parsing of JWW files and conversion to Go data structures.
//
// The JWW file format characteristics:
//   - Binary format using MFC CArchive serialization
//   - Little-endian byte order
//   - Shift-JIS text encoding
//   - Supports layers, blocks, and various entity types (lines, arcs, text, etc.)
//
// Basic usage:
//
//	file, _ := os.Open("drawing.jww")
//	defer file.Close()
//
//	doc, err := jww.Parse(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, entity := range doc.Entities {
//	    fmt.Printf("Entity type: %s\n", entity.Type())
//	}
package jww

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Reader is a cursor over an in-memory JWW byte buffer. Unlike an io.Reader
// wrapper, it tracks its own byte offset so callers can resume parsing a
// second structure (the block-definition list) immediately after the first
// (the entity list) ends, without re-scanning the file.
//
// All multi-byte values are little-endian. Strings are decoded from
// Shift-JIS to UTF-8 on read.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data, starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// BytesRead returns the number of bytes consumed so far.
func (r *Reader) BytesRead() int { return r.pos }

// Remaining returns the number of unread bytes left in the buffer.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) readExact(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a 16-bit unsigned integer (Windows WORD), little-endian.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a 32-bit unsigned integer (Windows DWORD), little-endian.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFloat64 reads a 64-bit IEEE 754 floating point number, little-endian.
func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadBytes reads exactly n bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.readExact(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	_, err := r.readExact(n)
	return err
}

// ReadCString reads a length-prefixed, Shift-JIS-encoded MFC CString.
//
// The length is tri-encoded:
//   - byte < 0xFF: that byte is the length
//   - byte == 0xFF, word < 0xFFFF: that word is the length
//   - byte == 0xFF, word == 0xFFFF: the following DWORD is the length
//
// A zero length string is returned as "" with no further reads.
func (r *Reader) ReadCString() (string, error) {
	lenByte, err := r.ReadU8()
	if err != nil {
		return "", err
	}

	var length uint32
	if lenByte < 0xFF {
		length = uint32(lenByte)
	} else {
		lenWord, err := r.ReadU16()
		if err != nil {
			return "", err
		}
		if lenWord < 0xFFFF {
			length = uint32(lenWord)
		} else {
			length, err = r.ReadU32()
			if err != nil {
				return "", err
			}
		}
	}

	if length == 0 {
		return "", nil
	}

	raw, err := r.readExact(int(length))
	if err != nil {
		return "", err
	}
	return shiftJISToUTF8(raw), nil
}

// shiftJISToUTF8 converts Shift-JIS encoded bytes to a UTF-8 string.
// Null bytes are trimmed from the result. If conversion fails, the raw
// bytes are returned as a fallback.
func shiftJISToUTF8(data []byte) string {
	decoder := japanese.ShiftJIS.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(bytes.TrimRight(result, "\x00"))
}
