package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 6

	// MaxPayloadSize caps a frame payload. The length field could carry
	// more, but nothing in this protocol legitimately approaches it and
	// readers must not allocate unbounded buffers from a wire length.
	MaxPayloadSize = 1 << 24

	// Version is the protocol version carried in FrameHello.
	Version = 1
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello    FrameType = 0x00 // Connection setup
	FrameSnapshot FrameType = 0x01 // Full snapshot
	FrameEdits    FrameType = 0x02 // Atomic batch of row edits
	FrameError    FrameType = 0x03 // Error message
	FrameControl  FrameType = 0x04 // Client control request
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameSnapshot:
		return "Snapshot"
	case FrameEdits:
		return "Edits"
	case FrameError:
		return "Error"
	case FrameControl:
		return "Control"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a framed protocol message: type, flags, payload.
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// NewFrame creates a frame with the given type and payload.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header. The length field
// holds the payload size faithfully for any payload up to MaxPayloadSize;
// larger frames must be rejected by the caller, not encoded.
func (f *Frame) Encode() []byte {
	length := len(f.Payload)
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = f.Flags
	binary.BigEndian.PutUint32(buf[2:FrameHeaderSize], uint32(length))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes a frame from bytes. The input must contain the full
// header and payload.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}

	length := int(binary.BigEndian.Uint32(data[2:FrameHeaderSize]))
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}

	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])

	return &Frame{
		Type:    FrameType(data[0]),
		Flags:   data[1],
		Payload: payload,
	}, nil
}

// WriteFrame writes a complete frame to w.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}

// ReadFrame reads a complete frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	length := int(binary.BigEndian.Uint32(header[2:FrameHeaderSize]))
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	return &Frame{
		Type:    FrameType(header[0]),
		Flags:   header[1],
		Payload: payload,
	}, nil
}

// EncodeHello builds a FrameHello announcing the protocol version.
func EncodeHello() *Frame {
	e := NewEncoder()
	e.WriteUvarint(Version)
	return NewFrame(FrameHello, e.Bytes())
}

// DecodeHello extracts the protocol version from a FrameHello payload.
func DecodeHello(payload []byte) (int, error) {
	d := NewDecoder(payload)
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// ControlOp is a client control request carried in a FrameControl.
type ControlOp uint8

const (
	// ControlResync asks the server for a fresh full snapshot. A client
	// sends it after missing or failing to apply an edits frame.
	ControlResync ControlOp = 0x01
)

// String returns the string representation of the control operation.
func (op ControlOp) String() string {
	switch op {
	case ControlResync:
		return "Resync"
	default:
		return "Unknown"
	}
}

// ErrInvalidControlOp reports an unknown operation byte in a control payload.
var ErrInvalidControlOp = errors.New("protocol: invalid control operation")

// EncodeControl builds a FrameControl carrying one control operation.
func EncodeControl(op ControlOp) *Frame {
	e := NewEncoder()
	e.WriteByte(byte(op))
	return NewFrame(FrameControl, e.Bytes())
}

// DecodeControl extracts the control operation from a FrameControl payload.
func DecodeControl(payload []byte) (ControlOp, error) {
	d := NewDecoder(payload)
	b, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	op := ControlOp(b)
	if op != ControlResync {
		return 0, ErrInvalidControlOp
	}
	return op, nil
}

// EncodeError builds a FrameError with a numeric code and message.
func EncodeError(code uint16, message string) *Frame {
	e := NewEncoder()
	e.WriteUint16(code)
	e.WriteString(message)
	return NewFrame(FrameError, e.Bytes())
}

// DecodeError extracts code and message from a FrameError payload.
func DecodeError(payload []byte) (uint16, string, error) {
	d := NewDecoder(payload)
	code, err := d.ReadUint16()
	if err != nil {
		return 0, "", err
	}
	msg, err := d.ReadString()
	if err != nil {
		return 0, "", err
	}
	return code, msg, nil
}
