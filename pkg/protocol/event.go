package protocol

import "errors"

// EventType identifies the kind of client event.
type EventType uint8

const (
	EventInput  EventType = 0x01
	EventChange EventType = 0x02
	EventSubmit EventType = 0x03
	EventClick  EventType = 0x04
	EventFocus  EventType = 0x05
	EventBlur   EventType = 0x06
)

// String returns the DOM event name for the type.
func (et EventType) String() string {
	switch et {
	case EventInput:
		return "input"
	case EventChange:
		return "change"
	case EventSubmit:
		return "submit"
	case EventClick:
		return "click"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// EventTypeFromName maps a DOM event name back to its wire type.
// Returns false for names the bridge does not carry.
func EventTypeFromName(name string) (EventType, bool) {
	switch name {
	case "input":
		return EventInput, true
	case "change":
		return EventChange, true
	case "submit":
		return EventSubmit, true
	case "click":
		return EventClick, true
	case "focus":
		return EventFocus, true
	case "blur":
		return EventBlur, true
	default:
		return 0, false
	}
}

// ErrInvalidEventType is returned when decoding a frame whose event type
// byte is not one the bridge understands.
var ErrInvalidEventType = errors.New("protocol: invalid event type")

// Event is one decoded client event. Input and change events carry the
// target's current value and checked state captured at dispatch time;
// the remaining types have no payload.
type Event struct {
	Seq     uint64
	Node    uint64
	Type    EventType
	Value   string
	Checked bool
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WriteUvarint(ev.Node)
	e.WriteByte(byte(ev.Type))
	switch ev.Type {
	case EventInput, EventChange:
		e.WriteString(ev.Value)
		e.WriteBool(ev.Checked)
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	return DecodeEventFrom(d)
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	node, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	tb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	ev := &Event{Seq: seq, Node: node, Type: EventType(tb)}
	switch ev.Type {
	case EventInput, EventChange:
		if ev.Value, err = d.ReadString(); err != nil {
			return nil, err
		}
		if ev.Checked, err = d.ReadBool(); err != nil {
			return nil, err
		}
	case EventSubmit, EventClick, EventFocus, EventBlur:
		// No payload.
	default:
		return nil, ErrInvalidEventType
	}
	return ev, nil
}
