package protocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	frame := NewFrame(FrameEdits, []byte{0x01, 0x02, 0x03})

	decoded, err := DecodeFrame(frame.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FrameEdits {
		t.Errorf("Type = %v, want Edits", decoded.Type)
	}
	if !bytes.Equal(decoded.Payload, frame.Payload) {
		t.Errorf("Payload = %v, want %v", decoded.Payload, frame.Payload)
	}
}

func TestFrameReadWrite(t *testing.T) {
	var buf bytes.Buffer
	frame := NewFrame(FrameSnapshot, []byte("payload"))

	if err := WriteFrame(&buf, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	decoded, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if decoded.Type != FrameSnapshot || string(decoded.Payload) != "payload" {
		t.Errorf("got %v %q", decoded.Type, decoded.Payload)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	frame := NewFrame(FrameSnapshot, make([]byte, MaxPayloadSize+1))

	if err := WriteFrame(io.Discard, frame); err != ErrFrameTooLarge {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestDecodeFrameOversizeLength(t *testing.T) {
	header := make([]byte, FrameHeaderSize)
	header[0] = byte(FrameSnapshot)
	binary.BigEndian.PutUint32(header[2:FrameHeaderSize], MaxPayloadSize+1)

	if _, err := DecodeFrame(header); err != ErrFrameTooLarge {
		t.Errorf("DecodeFrame err = %v, want ErrFrameTooLarge", err)
	}
	if _, err := ReadFrame(bytes.NewReader(header)); err != ErrFrameTooLarge {
		t.Errorf("ReadFrame err = %v, want ErrFrameTooLarge", err)
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	full := NewFrame(FrameEdits, []byte{1, 2, 3, 4}).Encode()

	for i := 0; i < len(full); i++ {
		if _, err := DecodeFrame(full[:i]); err == nil {
			t.Errorf("DecodeFrame of %d/%d bytes succeeded, want error", i, len(full))
		}
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameHello, "Hello"},
		{FrameSnapshot, "Snapshot"},
		{FrameEdits, "Edits"},
		{FrameError, "Error"},
		{FrameControl, "Control"},
		{FrameType(0xFF), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

func TestHelloRoundTrip(t *testing.T) {
	frame := EncodeHello()
	if frame.Type != FrameHello {
		t.Fatalf("Type = %v, want Hello", frame.Type)
	}
	v, err := DecodeHello(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if v != Version {
		t.Errorf("version = %d, want %d", v, Version)
	}
}

func TestErrorRoundTrip(t *testing.T) {
	frame := EncodeError(42, "section went missing")

	code, msg, err := DecodeError(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if code != 42 || msg != "section went missing" {
		t.Errorf("got (%d, %q)", code, msg)
	}
}

func TestEditsRoundTrip(t *testing.T) {
	batch := EditBatch{
		Generation: 7,
		Edits: []Edit{
			{Op: EditDeleteRow, Section: 0, Row: 1},
			{Op: EditDeleteRow, Section: 2, Row: 0},
			{Op: EditInsertRow, Section: 0, Row: 2, Content: "new row"},
			{Op: EditInsertRow, Section: 1, Row: 0, Content: ""},
		},
	}

	frame := EncodeEdits(batch)
	if frame.Type != FrameEdits {
		t.Fatalf("Type = %v, want Edits", frame.Type)
	}

	decoded, err := DecodeEdits(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeEdits: %v", err)
	}
	if !reflect.DeepEqual(decoded, batch) {
		t.Errorf("decoded = %+v, want %+v", decoded, batch)
	}
}

func TestEmptyEditsRoundTrip(t *testing.T) {
	frame := EncodeEdits(EditBatch{Generation: 3})

	decoded, err := DecodeEdits(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeEdits: %v", err)
	}
	if decoded.Generation != 3 || len(decoded.Edits) != 0 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestDecodeEditsInvalidOp(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1) // generation
	e.WriteUvarint(1) // one edit
	e.WriteByte(0x7F) // bogus op

	if _, err := DecodeEdits(e.Bytes()); err != ErrInvalidEditOp {
		t.Errorf("err = %v, want ErrInvalidEditOp", err)
	}
}

func TestDecodeEditsTruncated(t *testing.T) {
	frame := EncodeEdits(EditBatch{
		Generation: 1,
		Edits:      []Edit{{Op: EditInsertRow, Section: 0, Row: 0, Content: "abc"}},
	})

	for i := 0; i < len(frame.Payload); i++ {
		if _, err := DecodeEdits(frame.Payload[:i]); err == nil {
			t.Errorf("DecodeEdits of %d/%d bytes succeeded, want error", i, len(frame.Payload))
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	data := SnapshotData{
		Generation: 12,
		Sections: [][]string{
			{"alpha", "beta"},
			{},
			{"gamma"},
		},
	}

	frame := EncodeSnapshot(data)
	if frame.Type != FrameSnapshot {
		t.Fatalf("Type = %v, want Snapshot", frame.Type)
	}

	decoded, err := DecodeSnapshot(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if decoded.Generation != data.Generation {
		t.Errorf("Generation = %d, want %d", decoded.Generation, data.Generation)
	}
	if len(decoded.Sections) != len(data.Sections) {
		t.Fatalf("sections = %d, want %d", len(decoded.Sections), len(data.Sections))
	}
	for s := range data.Sections {
		if !reflect.DeepEqual(decoded.Sections[s], data.Sections[s]) &&
			!(len(decoded.Sections[s]) == 0 && len(data.Sections[s]) == 0) {
			t.Errorf("section %d = %v, want %v", s, decoded.Sections[s], data.Sections[s])
		}
	}
}

func TestLargeSnapshotFrameRoundTrip(t *testing.T) {
	// Well past 64 KiB: 1000 rows of 100 bytes each. The frame header must
	// carry the payload length faithfully end to end.
	row := strings.Repeat("x", 100)
	rows := make([]string, 1000)
	for i := range rows {
		rows[i] = row
	}
	data := SnapshotData{Generation: 9, Sections: [][]string{rows}}

	frame := EncodeSnapshot(data)
	if len(frame.Payload) <= 1<<16 {
		t.Fatalf("payload = %d bytes, fixture must exceed 64 KiB", len(frame.Payload))
	}

	decoded, err := DecodeFrame(frame.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if len(decoded.Payload) != len(frame.Payload) {
		t.Fatalf("payload = %d bytes after framing, want %d", len(decoded.Payload), len(frame.Payload))
	}

	got, err := DecodeSnapshot(decoded.Payload)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if got.Generation != 9 || len(got.Sections) != 1 || len(got.Sections[0]) != 1000 {
		t.Fatalf("decoded shape = gen %d, %d sections", got.Generation, len(got.Sections))
	}
	if got.Sections[0][999] != row {
		t.Errorf("last row = %q, want %d x's", got.Sections[0][999], len(row))
	}
}

func TestControlRoundTrip(t *testing.T) {
	frame := EncodeControl(ControlResync)
	if frame.Type != FrameControl {
		t.Fatalf("Type = %v, want Control", frame.Type)
	}

	op, err := DecodeControl(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if op != ControlResync {
		t.Errorf("op = %v, want Resync", op)
	}
}

func TestDecodeControlInvalidOp(t *testing.T) {
	if _, err := DecodeControl([]byte{0x7F}); err != ErrInvalidControlOp {
		t.Errorf("err = %v, want ErrInvalidControlOp", err)
	}
	if _, err := DecodeControl(nil); err == nil {
		t.Error("DecodeControl(nil) succeeded, want error")
	}
}

func TestDecodeSnapshotCountLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteUvarint(MaxSectionCount + 1)

	if _, err := DecodeSnapshot(e.Bytes()); err != ErrCountTooLarge {
		t.Errorf("err = %v, want ErrCountTooLarge", err)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 32, 1<<64 - 1}

	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d", v, got)
		}
		if !d.EOF() {
			t.Errorf("decoder not at EOF after %d", v)
		}
	}
}

func TestVarintOverflow(t *testing.T) {
	buf := bytes.Repeat([]byte{0xFF}, 11)

	d := NewDecoder(buf)
	if _, err := d.ReadUvarint(); err != ErrVarintOverflow {
		t.Errorf("err = %v, want ErrVarintOverflow", err)
	}
}

func TestStringLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLen + 1)

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); err != ErrStringTooLarge {
		t.Errorf("err = %v, want ErrStringTooLarge", err)
	}
}
