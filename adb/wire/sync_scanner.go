package wire

import (
	"encoding/binary"
	"io"

	"github.com/kvnxiao/aim/internal/errors"
)

// SyncScanner reads sync frames from the server.
type SyncScanner interface {
	io.Closer
	StatusReader

	// ReadInt32 reads a little-endian u32.
	ReadInt32() (int32, error)
	// ReadOctetString reads a 4-byte ASCII tag.
	ReadOctetString() (string, error)
	// ReadString reads a u32 length then that many bytes.
	ReadString() (string, error)
	// ReadBytes returns a reader over the next length-prefixed blob. The
	// returned reader must be fully drained before the scanner is used
	// again.
	ReadBytes() (io.Reader, error)
	// ReadExact fills buf from the stream.
	ReadExact(buf []byte) error
}

type realSyncScanner struct {
	Reader io.ReadCloser
}

func NewSyncScanner(r io.ReadCloser) SyncScanner {
	return &realSyncScanner{r}
}

func RequireOctetString(s SyncScanner, expected string) error {
	actual, err := s.ReadOctetString()
	if err != nil {
		return errors.WrapErrf(err, "expected to read %q", expected)
	}
	if actual != expected {
		return errors.Errorf(errors.ProtocolError, "expected to read %q, got %q", expected, actual)
	}
	return nil
}

// ReadStatus reads the 4-byte tag of a sync trailer. On FAIL it also reads
// the u32 length and the message and returns them as an AdbError; a
// zero-length FAIL message is valid. Any other tag is returned as is, and
// the u32 that follows it (zero after OKAY) is left for the caller to read.
func (s *realSyncScanner) ReadStatus(req string) (string, error) {
	status, err := s.ReadOctetString()
	if err != nil {
		return "", errors.WrapErrf(err, "error reading status for %s", req)
	}

	if isFailureStatus(status) {
		msg, err := s.ReadString()
		if err != nil {
			return "", errors.WrapErrf(err, "server returned error for %s, but couldn't read the error message", req)
		}
		return "", adbServerError(req, msg)
	}

	return status, nil
}

func (s *realSyncScanner) ReadInt32() (int32, error) {
	var value int32
	err := binary.Read(s.Reader, binary.LittleEndian, &value)
	return value, errors.WrapErrorf(err, errors.NetworkError, "error reading int from sync scanner")
}

func (s *realSyncScanner) ReadOctetString() (string, error) {
	octet := make([]byte, 4)
	_, err := io.ReadFull(s.Reader, octet)
	if err != nil {
		return "", errors.WrapErrorf(err, errors.NetworkError, "error reading octet string from sync scanner")
	}
	return string(octet), nil
}

func (s *realSyncScanner) ReadString() (string, error) {
	length, err := s.ReadInt32()
	if err != nil {
		return "", errors.WrapErrf(err, "error reading length from sync scanner")
	}

	bytes := make([]byte, length)
	_, err = io.ReadFull(s.Reader, bytes)
	if err != nil {
		return "", errors.WrapErrorf(err, errors.NetworkError, "error reading string from sync scanner")
	}
	return string(bytes), nil
}

func (s *realSyncScanner) ReadBytes() (io.Reader, error) {
	length, err := s.ReadInt32()
	if err != nil {
		return nil, errors.WrapErrf(err, "error reading bytes from sync scanner")
	}

	return io.LimitReader(s.Reader, int64(length)), nil
}

func (s *realSyncScanner) ReadExact(buf []byte) error {
	_, err := io.ReadFull(s.Reader, buf)
	return errors.WrapErrorf(err, errors.NetworkError, "error reading %d bytes from sync scanner", len(buf))
}

func (s *realSyncScanner) Close() error {
	return errors.WrapErrorf(s.Reader.Close(), errors.NetworkError, "error closing sync scanner")
}

var _ SyncScanner = &realSyncScanner{}
