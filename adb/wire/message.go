package wire

import (
	"encoding/binary"

	"github.com/kvnxiao/aim/internal/errors"
)

// MessageHeaderLength is the fixed size of an encoded Message before its
// payload.
const MessageHeaderLength = 24

/*
Message is the 24-byte framed message of the transport-level adb protocol:
a 4-byte ASCII command, two u32 arguments, the payload length, and a magic
field that must equal the bitwise complement of the payload length. All
integers are little-endian.

This framing is spoken between the server and the device daemon; the client
only needs it to validate and round-trip captures, but the layout is
authoritative and kept here next to the rest of the wire formats so encoder
and decoder can never drift.
*/
type Message struct {
	Command string
	Arg0    uint32
	Arg1    uint32
	Data    []byte
}

// EncodeMessage serializes m. The magic field is derived, never stored.
func EncodeMessage(m Message) ([]byte, error) {
	if len(m.Command) != 4 {
		return nil, errors.AssertionErrorf("command must be exactly 4 bytes: %q", m.Command)
	}

	dataLen := uint32(len(m.Data))
	buf := make([]byte, MessageHeaderLength+len(m.Data))

	copy(buf[0:4], m.Command)
	binary.LittleEndian.PutUint32(buf[4:8], m.Arg0)
	binary.LittleEndian.PutUint32(buf[8:12], m.Arg1)
	binary.LittleEndian.PutUint32(buf[12:16], dataLen)
	binary.LittleEndian.PutUint32(buf[16:20], ^dataLen)
	// buf[20:24] is the data checksum, ignored by modern servers and left
	// zero here.
	copy(buf[MessageHeaderLength:], m.Data)

	return buf, nil
}

// DecodeMessage parses an encoded message, rejecting frames whose magic is
// not the complement of the data length.
func DecodeMessage(buf []byte) (Message, error) {
	if len(buf) < MessageHeaderLength {
		return Message{}, errors.Errorf(errors.ProtocolError, "message too short: %d bytes", len(buf))
	}

	dataLen := binary.LittleEndian.Uint32(buf[12:16])
	magic := binary.LittleEndian.Uint32(buf[16:20])
	if magic != ^dataLen {
		return Message{}, errors.Errorf(errors.ProtocolError, "bad magic %#x for data length %d", magic, dataLen)
	}
	if uint32(len(buf)-MessageHeaderLength) < dataLen {
		return Message{}, errors.Errorf(errors.ProtocolError, "truncated payload: have %d bytes, header says %d",
			len(buf)-MessageHeaderLength, dataLen)
	}

	m := Message{
		Command: string(buf[0:4]),
		Arg0:    binary.LittleEndian.Uint32(buf[4:8]),
		Arg1:    binary.LittleEndian.Uint32(buf[8:12]),
	}
	if dataLen > 0 {
		m.Data = make([]byte, dataLen)
		copy(m.Data, buf[MessageHeaderLength:MessageHeaderLength+dataLen])
	}
	return m, nil
}
