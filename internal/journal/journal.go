// Package journal implements the NRJ1 append-only framed binary format:
// a fixed 16-byte header followed by a sequence of length-prefixed
// frames, each carrying one event's JSON payload.
//
package journal

import (
	"encoding/binary"
	"fmt"
)

const (
	Magic          = "NRJ1"
	Version        = uint16(0x0001)
	HeaderLen      = 16
	FrameKindEvent = uint8(0x01)
	MaxPayloadLen  = 16 * 1024 * 1024 // 16 MiB per frame
	framePrefixLen = 6
)

// Header is the journal file's fixed 16-byte preamble.
type Header struct {
	Version uint16
	Flags   uint16
}

// encodeHeader renders h as the canonical 16-byte NRJ1 header: magic,
// version, flags, then 8 reserved zero bytes.
func encodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	// buf[8:16] stays zero: reserved.
	return buf
}

// decodeHeader parses and validates a 16-byte header, rejecting a bad
// magic, an unsupported version, or a non-zero reserved region.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderLen {
		return Header{}, &Error{Kind: ErrShortRead, Detail: fmt.Sprintf("header: got %d bytes, want %d", len(buf), HeaderLen)}
	}
	if string(buf[0:4]) != Magic {
		return Header{}, &Error{Kind: ErrBadMagic, Detail: fmt.Sprintf("got %q", buf[0:4])}
	}
	version := binary.LittleEndian.Uint16(buf[4:6])
	if version != Version {
		return Header{}, &Error{Kind: ErrUnsupportedVersion, Detail: fmt.Sprintf("got 0x%04x", version)}
	}
	flags := binary.LittleEndian.Uint16(buf[6:8])
	for _, b := range buf[8:16] {
		if b != 0 {
			return Header{}, &Error{Kind: ErrReservedByteNonZero}
		}
	}
	return Header{Version: version, Flags: flags}, nil
}

// Frame is one decoded record: its kind and payload bytes.
type Frame struct {
	Kind    uint8
	Payload []byte
}

// encodeFrame renders kind/payload as the 6-byte prefix plus payload body.
// Callers must have already checked len(payload) <= MaxPayloadLen.
func encodeFrame(kind uint8, payload []byte) []byte {
	buf := make([]byte, framePrefixLen+len(payload))
	buf[0] = kind
	buf[1] = 0x00 // reserved
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(payload)))
	copy(buf[6:], payload)
	return buf
}
