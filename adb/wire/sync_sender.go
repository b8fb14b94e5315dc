package wire

import (
	"encoding/binary"
	"io"
	"os"
	"time"

	"github.com/kvnxiao/aim/internal/errors"
)

// SyncSender writes sync frames to the server.
type SyncSender interface {
	io.Closer

	// SendOctetString sends a 4-byte ASCII tag.
	SendOctetString(str string) error
	// SendInt32 sends a little-endian u32.
	SendInt32(val int32) error
	SendFileMode(mode os.FileMode) error
	SendTime(t time.Time) error

	// SendBytes sends a u32 length followed by the data itself.
	SendBytes(data []byte) error
}

type realSyncSender struct {
	Writer io.WriteCloser
}

func NewSyncSender(w io.WriteCloser) SyncSender {
	return &realSyncSender{w}
}

func SendSyncString(s SyncSender, str string) error {
	return s.SendBytes([]byte(str))
}

func (s *realSyncSender) SendOctetString(str string) error {
	if len(str) != 4 {
		return errors.AssertionErrorf("octet string must be exactly 4 bytes: %q", str)
	}
	return errors.WrapErrorf(writeFully(s.Writer, []byte(str)),
		errors.NetworkError, "error sending sync tag")
}

func (s *realSyncSender) SendInt32(val int32) error {
	return errors.WrapErrorf(binary.Write(s.Writer, binary.LittleEndian, val),
		errors.NetworkError, "error sending int on sync sender")
}

func (s *realSyncSender) SendFileMode(mode os.FileMode) error {
	return errors.WrapErrorf(binary.Write(s.Writer, binary.LittleEndian, mode),
		errors.NetworkError, "error sending file mode on sync sender")
}

func (s *realSyncSender) SendTime(t time.Time) error {
	return errors.WrapErrorf(s.SendInt32(int32(t.Unix())),
		errors.NetworkError, "error sending time on sync sender")
}

func (s *realSyncSender) SendBytes(data []byte) error {
	length := len(data)
	if length > SyncMaxChunkSize {
		// This limit might not apply to filenames, but it's big enough
		// that I don't think it will be a problem.
		return errors.AssertionErrorf("data must be <= %d in length", SyncMaxChunkSize)
	}

	if err := s.SendInt32(int32(length)); err != nil {
		return errors.WrapErrf(err, "error sending data length on sync sender")
	}
	return errors.WrapErrorf(writeFully(s.Writer, data),
		errors.NetworkError, "error sending data on sync sender")
}

func (s *realSyncSender) Close() error {
	return errors.WrapErrorf(s.Writer.Close(), errors.NetworkError,
		"error closing sync sender")
}

var _ SyncSender = &realSyncSender{}
