package jww

import (
	"errors"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	var b testBuf
	b.u8(0x42).u16(0x1234).u32(0xDEADBEEF).f64(3.5).raw([]byte("abc"))

	r := NewReader(b.Bytes())

	if v, err := r.ReadU8(); err != nil || v != 0x42 {
		t.Fatalf("ReadU8: got (%v, %v), want (0x42, nil)", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadU16: got (%v, %v), want (0x1234, nil)", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadU32: got (%v, %v), want (0xDEADBEEF, nil)", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 3.5 {
		t.Fatalf("ReadFloat64: got (%v, %v), want (3.5, nil)", v, err)
	}
	raw, err := r.ReadBytes(3)
	if err != nil || string(raw) != "abc" {
		t.Fatalf("ReadBytes: got (%q, %v), want (\"abc\", nil)", raw, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", r.Remaining())
	}
	if r.BytesRead() != len(b.Bytes()) {
		t.Errorf("BytesRead: got %d, want %d", r.BytesRead(), len(b.Bytes()))
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadU32(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	v, err := r.ReadU8()
	if err != nil || v != 4 {
		t.Fatalf("after skip: got (%v, %v), want (4, nil)", v, err)
	}
	if err := r.Skip(10); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected EOF skipping past end, got %v", err)
	}
}

// TestReadCStringLengthTiers exercises all three length-prefix encodings:
// 1-byte (<0xFF), 2-byte (0xFF then <0xFFFF), and 4-byte (0xFF, 0xFFFF,
// then a u32).
func TestReadCStringLengthTiers(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		var b testBuf
		b.u8(5).WriteString("hello")
		r := NewReader(b.Bytes())
		s, err := r.ReadCString()
		if err != nil || s != "hello" {
			t.Fatalf("got (%q, %v), want (\"hello\", nil)", s, err)
		}
	})

	t.Run("word-length", func(t *testing.T) {
		payload := make([]byte, 300)
		for i := range payload {
			payload[i] = 'a'
		}
		var b testBuf
		b.u8(0xFF).u16(uint16(len(payload))).raw(payload)
		r := NewReader(b.Bytes())
		s, err := r.ReadCString()
		if err != nil || len(s) != len(payload) {
			t.Fatalf("got (len=%d, %v), want (len=%d, nil)", len(s), err, len(payload))
		}
	})

	t.Run("dword-length", func(t *testing.T) {
		payload := []byte("small-but-forced-through-the-dword-tier")
		var b testBuf
		b.u8(0xFF).u16(0xFFFF).u32(uint32(len(payload))).raw(payload)
		r := NewReader(b.Bytes())
		s, err := r.ReadCString()
		if err != nil || s != string(payload) {
			t.Fatalf("got (%q, %v), want (%q, nil)", s, err, payload)
		}
	})

	t.Run("zero-length", func(t *testing.T) {
		var b testBuf
		b.u8(0)
		r := NewReader(b.Bytes())
		s, err := r.ReadCString()
		if err != nil || s != "" {
			t.Fatalf("got (%q, %v), want (\"\", nil)", s, err)
		}
		if r.Remaining() != 0 {
			t.Errorf("zero-length string should read no payload bytes, %d remain", r.Remaining())
		}
	})

	t.Run("trailing-nul-stripped", func(t *testing.T) {
		var b testBuf
		b.u8(4).WriteString("ab\x00\x00")
		r := NewReader(b.Bytes())
		s, err := r.ReadCString()
		if err != nil || s != "ab" {
			t.Fatalf("got (%q, %v), want (\"ab\", nil)", s, err)
		}
	})
}

func TestIsSignature(t *testing.T) {
	if !IsSignature([]byte("JwwData.extra")) {
		t.Error("expected valid signature to match")
	}
	if IsSignature([]byte("NotAJww.")) {
		t.Error("expected mismatched signature to fail")
	}
	if IsSignature([]byte("short")) {
		t.Error("expected too-short buffer to fail")
	}
}
