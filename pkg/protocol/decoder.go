package protocol

import (
	"errors"
	"io"
)

// Limits guarding against malicious length prefixes and counts.
const (
	// MaxStringLen caps length-prefixed strings (row content).
	MaxStringLen = 1 << 20

	// MaxEditCount caps the number of operations in one edits payload.
	MaxEditCount = 100_000

	// MaxSectionCount and MaxRowCount cap snapshot dimensions.
	MaxSectionCount = 10_000
	MaxRowCount     = 1_000_000

	// maxVarintLen is the most bytes a uint64 varint can occupy.
	maxVarintLen = 10
)

// Decoding errors.
var (
	ErrVarintOverflow = errors.New("protocol: varint overflow")
	ErrStringTooLarge = errors.New("protocol: string length exceeds limit")
	ErrCountTooLarge  = errors.New("protocol: collection count exceeds limit")
)

// Decoder is a binary decoder reading from a byte buffer.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true once all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint

	for i := 0; ; i++ {
		if i >= maxVarintLen {
			return 0, ErrVarintOverflow
		}
		if d.pos >= len(d.buf) {
			return 0, io.ErrUnexpectedEOF
		}
		b := d.buf[d.pos]
		d.pos++
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
	}
}

// ReadString reads a varint length prefix and that many bytes.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", ErrStringTooLarge
	}
	if d.pos+int(n) > len(d.buf) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// readCount reads a varint and validates it against limit.
func (d *Decoder) readCount(limit uint64) (int, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, ErrCountTooLarge
	}
	return int(n), nil
}
