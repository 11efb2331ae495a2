package protocol

import "errors"

// ControlType identifies a control message.
type ControlType uint8

const (
	ControlPing     ControlType = 0x01
	ControlPong     ControlType = 0x02
	ControlShutdown ControlType = 0x03 // Server is closing the session
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// ErrInvalidControlType is returned when decoding an unknown control byte.
var ErrInvalidControlType = errors.New("protocol: invalid control type")

// Control is a ping, pong, or shutdown message. Token echoes back
// unchanged in a pong so round trips can be matched up.
type Control struct {
	Type  ControlType
	Token uint64
}

// EncodeControl encodes a control message to bytes.
func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Type))
	e.WriteUvarint(c.Token)
	return e.Bytes()
}

// DecodeControl decodes a control message from bytes.
func DecodeControl(data []byte) (*Control, error) {
	d := NewDecoder(data)
	tb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ct := ControlType(tb)
	if ct < ControlPing || ct > ControlShutdown {
		return nil, ErrInvalidControlType
	}
	token, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &Control{Type: ct, Token: token}, nil
}

// Ack acknowledges patches up to and including LastSeq. The server uses
// it to drop retained patch history and to detect a lagging client.
type Ack struct {
	LastSeq uint64
}

// EncodeAck encodes an Ack to bytes.
func EncodeAck(a *Ack) []byte {
	e := NewEncoder()
	e.WriteUvarint(a.LastSeq)
	return e.Bytes()
}

// DecodeAck decodes an Ack from bytes.
func DecodeAck(data []byte) (*Ack, error) {
	d := NewDecoder(data)
	lastSeq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &Ack{LastSeq: lastSeq}, nil
}
