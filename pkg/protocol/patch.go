package protocol

import "errors"

// PatchOp is the type of server-to-client DOM operation.
type PatchOp uint8

const (
	PatchSetAttr    PatchOp = 0x01 // Set attribute (default only; never clobbers a dirty control)
	PatchRemoveAttr PatchOp = 0x02 // Remove attribute
	PatchSetProp    PatchOp = 0x03 // Set property (live value, checked, selected)
	PatchSetText    PatchOp = 0x04 // Replace text content
	PatchAppend     PatchOp = 0x05 // Append rendered subtree; Value carries the HTML
	PatchRemove     PatchOp = 0x06 // Remove node
	PatchNavigate   PatchOp = 0x07 // Full navigation; Value carries the URL
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchSetProp:
		return "SetProp"
	case PatchSetText:
		return "SetText"
	case PatchAppend:
		return "Append"
	case PatchRemove:
		return "Remove"
	case PatchNavigate:
		return "Navigate"
	default:
		return "Unknown"
	}
}

// ErrInvalidPatchOp is returned when decoding a patch whose op byte is unknown.
var ErrInvalidPatchOp = errors.New("protocol: invalid patch op")

// Patch is a single DOM operation addressed by node identifier.
type Patch struct {
	Node  uint64
	Op    PatchOp
	Name  string // attribute or property name; empty for text/append/remove
	Value string
}

// PatchSet is a batch of patches produced by one dispatch, tagged with a
// sequence number for acknowledgment.
type PatchSet struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatchSet encodes a patch set to bytes.
func EncodePatchSet(ps *PatchSet) []byte {
	e := NewEncoder()
	EncodePatchSetTo(e, ps)
	return e.Bytes()
}

// EncodePatchSetTo encodes a patch set using the provided encoder.
func EncodePatchSetTo(e *Encoder, ps *PatchSet) {
	e.WriteUvarint(ps.Seq)
	e.WriteUvarint(uint64(len(ps.Patches)))
	for i := range ps.Patches {
		p := &ps.Patches[i]
		e.WriteUvarint(p.Node)
		e.WriteByte(byte(p.Op))
		switch p.Op {
		case PatchSetAttr, PatchSetProp:
			e.WriteString(p.Name)
			e.WriteString(p.Value)
		case PatchRemoveAttr:
			e.WriteString(p.Name)
		case PatchSetText, PatchAppend, PatchNavigate:
			e.WriteString(p.Value)
		case PatchRemove:
			// Node id only.
		}
	}
}

// DecodePatchSet decodes a patch set from bytes.
func DecodePatchSet(data []byte) (*PatchSet, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	// A patch is at least two bytes on the wire, so a count larger than
	// the remaining buffer is corrupt.
	if count > uint64(d.Remaining()) {
		return nil, ErrInvalidPatchOp
	}

	ps := &PatchSet{Seq: seq, Patches: make([]Patch, 0, count)}
	for i := uint64(0); i < count; i++ {
		var p Patch
		if p.Node, err = d.ReadUvarint(); err != nil {
			return nil, err
		}
		ob, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		p.Op = PatchOp(ob)
		switch p.Op {
		case PatchSetAttr, PatchSetProp:
			if p.Name, err = d.ReadString(); err != nil {
				return nil, err
			}
			if p.Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		case PatchRemoveAttr:
			if p.Name, err = d.ReadString(); err != nil {
				return nil, err
			}
		case PatchSetText, PatchAppend, PatchNavigate:
			if p.Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		case PatchRemove:
		default:
			return nil, ErrInvalidPatchOp
		}
		ps.Patches = append(ps.Patches, p)
	}
	return ps, nil
}
