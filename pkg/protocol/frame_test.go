package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{
			name:  "empty_payload",
			frame: NewFrame(FrameControl, nil),
		},
		{
			name:  "event",
			frame: NewFrame(FrameEvent, []byte{1, 2, 3}),
		},
		{
			name:  "patches",
			frame: NewFrame(FramePatches, bytes.Repeat([]byte{0xAB}, 1000)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeFrame(tc.frame.Encode())
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Type != tc.frame.Type {
				t.Errorf("Type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Errorf("Payload = %v, want %v", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestFrameReadWrite(t *testing.T) {
	var buf bytes.Buffer
	want := NewFrame(FrameAck, []byte{42})

	if err := WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
		t.Errorf("ReadFrame = %+v, want %+v", got, want)
	}
}

func TestFrameTooLarge(t *testing.T) {
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); err != ErrFrameTooLarge {
		t.Errorf("error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameInvalidType(t *testing.T) {
	data := []byte{0xEE, 0, 0, 0}
	if _, err := DecodeFrame(data); err != ErrInvalidFrameType {
		t.Errorf("error = %v, want ErrInvalidFrameType", err)
	}
}

func TestFrameTruncatedHeader(t *testing.T) {
	if _, err := DecodeFrame([]byte{byte(FrameEvent), 0}); err != io.ErrUnexpectedEOF {
		t.Errorf("error = %v, want io.ErrUnexpectedEOF", err)
	}
}
