package protocol

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 32, ^uint64(0)}

	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("ReadUvarint = %d, want %d", got, v)
		}
		if !d.EOF() {
			t.Errorf("decoder has %d trailing bytes", d.Remaining())
		}
	}
}

func TestUvarintTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(16384)
	buf := e.Bytes()

	d := NewDecoder(buf[:len(buf)-1])
	if _, err := d.ReadUvarint(); err != io.ErrUnexpectedEOF {
		t.Errorf("error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestUvarintOverflow(t *testing.T) {
	buf := bytes.Repeat([]byte{0x80}, 11)
	d := NewDecoder(buf)
	if _, err := d.ReadUvarint(); err != ErrVarintOverflow {
		t.Errorf("error = %v, want ErrVarintOverflow", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{"", "a", "hello", "héllo wörld", strings.Repeat("x", 1000)}

	for _, s := range tests {
		e := NewEncoder()
		e.WriteString(s)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) error = %v", s, err)
		}
		if got != s {
			t.Errorf("ReadString = %q, want %q", got, s)
		}
	}
}

func TestStringLengthLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLen + 1)

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); err != ErrStringTooLong {
		t.Errorf("error = %v, want ErrStringTooLong", err)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteBool(true)
	e.WriteBool(false)

	d := NewDecoder(e.Bytes())
	v, err := d.ReadBool()
	if err != nil || !v {
		t.Errorf("first ReadBool = %v, %v, want true, nil", v, err)
	}
	v, err = d.ReadBool()
	if err != nil || v {
		t.Errorf("second ReadBool = %v, %v, want false, nil", v, err)
	}
}

func TestBoolInvalid(t *testing.T) {
	d := NewDecoder([]byte{2})
	if _, err := d.ReadBool(); err != ErrInvalidBool {
		t.Errorf("error = %v, want ErrInvalidBool", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello")
	e.Reset()

	if e.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", e.Len())
	}
	e.WriteByte(7)
	if !bytes.Equal(e.Bytes(), []byte{7}) {
		t.Errorf("Bytes = %v, want [7]", e.Bytes())
	}
}
