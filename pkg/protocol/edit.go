package protocol

import "errors"

// EditOp is the type of row edit operation.
type EditOp uint8

const (
	EditDeleteRow EditOp = 0x01 // Remove one row
	EditInsertRow EditOp = 0x02 // Insert one row with content
)

// String returns the string representation of the edit operation.
func (op EditOp) String() string {
	switch op {
	case EditDeleteRow:
		return "DeleteRow"
	case EditInsertRow:
		return "InsertRow"
	default:
		return "Unknown"
	}
}

// ErrInvalidEditOp reports an unknown operation byte in an edits payload.
var ErrInvalidEditOp = errors.New("protocol: invalid edit operation")

// Edit is a single row operation. Delete rows address positions before the
// batch, insert rows positions after it; Content is set for inserts only.
type Edit struct {
	Op      EditOp
	Section int
	Row     int
	Content string
}

// EditBatch is one atomic batch of row edits. Applying every edit of the
// batch transforms the client's copy of the previous generation into Generation.
type EditBatch struct {
	Generation uint64
	Edits      []Edit
}

// SnapshotData is a fully rendered snapshot: per section, each row's
// rendered content.
type SnapshotData struct {
	Generation uint64
	Sections   [][]string
}

// EncodeEdits builds a FrameEdits from a batch.
func EncodeEdits(batch EditBatch) *Frame {
	e := NewEncoder()
	e.WriteUvarint(batch.Generation)
	e.WriteUvarint(uint64(len(batch.Edits)))
	for _, edit := range batch.Edits {
		e.WriteByte(byte(edit.Op))
		e.WriteUvarint(uint64(edit.Section))
		e.WriteUvarint(uint64(edit.Row))
		if edit.Op == EditInsertRow {
			e.WriteString(edit.Content)
		}
	}
	return NewFrame(FrameEdits, e.Bytes())
}

// DecodeEdits parses a FrameEdits payload.
func DecodeEdits(payload []byte) (EditBatch, error) {
	d := NewDecoder(payload)

	gen, err := d.ReadUvarint()
	if err != nil {
		return EditBatch{}, err
	}

	count, err := d.readCount(MaxEditCount)
	if err != nil {
		return EditBatch{}, err
	}

	batch := EditBatch{Generation: gen}
	if count > 0 {
		batch.Edits = make([]Edit, 0, count)
	}
	for i := 0; i < count; i++ {
		opByte, err := d.ReadByte()
		if err != nil {
			return EditBatch{}, err
		}
		op := EditOp(opByte)
		if op != EditDeleteRow && op != EditInsertRow {
			return EditBatch{}, ErrInvalidEditOp
		}

		section, err := d.ReadUvarint()
		if err != nil {
			return EditBatch{}, err
		}
		row, err := d.ReadUvarint()
		if err != nil {
			return EditBatch{}, err
		}

		edit := Edit{Op: op, Section: int(section), Row: int(row)}
		if op == EditInsertRow {
			edit.Content, err = d.ReadString()
			if err != nil {
				return EditBatch{}, err
			}
		}
		batch.Edits = append(batch.Edits, edit)
	}

	return batch, nil
}

// EncodeSnapshot builds a FrameSnapshot from rendered snapshot data.
func EncodeSnapshot(data SnapshotData) *Frame {
	e := NewEncoder()
	e.WriteUvarint(data.Generation)
	e.WriteUvarint(uint64(len(data.Sections)))
	for _, section := range data.Sections {
		e.WriteUvarint(uint64(len(section)))
		for _, row := range section {
			e.WriteString(row)
		}
	}
	return NewFrame(FrameSnapshot, e.Bytes())
}

// DecodeSnapshot parses a FrameSnapshot payload.
func DecodeSnapshot(payload []byte) (SnapshotData, error) {
	d := NewDecoder(payload)

	gen, err := d.ReadUvarint()
	if err != nil {
		return SnapshotData{}, err
	}

	sections, err := d.readCount(MaxSectionCount)
	if err != nil {
		return SnapshotData{}, err
	}

	data := SnapshotData{Generation: gen, Sections: make([][]string, sections)}
	for s := 0; s < sections; s++ {
		rows, err := d.readCount(MaxRowCount)
		if err != nil {
			return SnapshotData{}, err
		}
		data.Sections[s] = make([]string, rows)
		for r := 0; r < rows; r++ {
			data.Sections[s][r], err = d.ReadString()
			if err != nil {
				return SnapshotData{}, err
			}
		}
	}

	return data, nil
}
