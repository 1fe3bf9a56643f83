// Package protocol implements the binary wire format for remote grid views.
//
// A binder-driven grid can live on the other end of a WebSocket connection.
// This package defines how full snapshots and batched row edits are framed
// and encoded for that transport. Encoding is direct byte manipulation with
// no reflection; typical edit batches are a few dozen bytes.
//
// # Wire Format
//
// All messages are framed with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Payloads are capped at MaxPayloadSize; readers reject any frame whose
// header claims more before allocating.
//
// # Frame Types
//
//   - FrameHello (0x00): connection setup, carries the protocol version
//   - FrameSnapshot (0x01): full snapshot, sent on attach and on reload
//   - FrameEdits (0x02): one atomic batch of row edits
//   - FrameError (0x03): error code and message
//   - FrameControl (0x04): client request, currently only ControlResync
//
// # Payloads
//
// Integers are varint encoded (protobuf style), strings length-prefixed.
// A snapshot payload is a generation number, a section count, and per
// section a row count followed by each row's rendered content. An edits
// payload is a generation number and a sequence of operations; deletes
// carry a (section, row) address, inserts additionally carry the rendered
// content of the new row. Applying all operations of one edits frame
// transforms the client's copy of generation N into generation N+1; a
// client that misses a frame discards its copy and either waits for the
// next snapshot or requests one immediately with a ControlResync frame.
package protocol
