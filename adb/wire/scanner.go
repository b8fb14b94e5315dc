package wire

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kvnxiao/aim/internal/errors"
)

// Status tags, as bytes on the wire. Exactly one tag answers every request,
// before any payload bytes.
const (
	StatusSuccess string = "OKAY"
	StatusFailure string = "FAIL"
	StatusNone    string = ""
)

func isFailureStatus(status string) bool {
	return status == StatusFailure
}

type StatusReader interface {
	// Reads a 4-byte status string and returns it.
	// If the status string is StatusFailure, reads the error message from the server
	// and returns it as an AdbError.
	ReadStatus(req string) (string, error)
}

/*
Scanner reads tokens from a server.
See Conn for more details.
*/
type Scanner interface {
	StatusReader
	ReadMessage() ([]byte, error)
	ReadUntilEof() ([]byte, error)

	NewSyncScanner() SyncScanner

	Close() error
}

type realScanner struct {
	reader io.ReadCloser

	// Some adb server builds answer certain low-level requests with small
	// binary values instead of a textual OKAY. When set, those byte
	// patterns are accepted as success. Off by default: only OKAY is
	// success, everything else is a protocol error.
	tolerateLegacyStatus bool
}

func NewScanner(r io.ReadCloser) Scanner {
	return &realScanner{reader: r}
}

// NewLegacyStatusScanner returns a Scanner that additionally accepts the
// undocumented numeric success patterns some servers emit.
func NewLegacyStatusScanner(r io.ReadCloser) Scanner {
	return &realScanner{reader: r, tolerateLegacyStatus: true}
}

func ReadMessageString(s Scanner) (string, error) {
	msg, err := s.ReadMessage()
	if err != nil {
		return string(msg), err
	}
	return string(msg), nil
}

// legacyStatusBytes are byte patterns observed from old servers in place of
// OKAY. Only honored when the scanner was built with legacy tolerance.
var legacyStatusBytes = [][4]byte{
	{8, 0, 0, 0},
	{9, 0, 0, 0},
	{0, 0, 0, 0},
	{3, 0, 0, 0},
	{1, 0, 0, 0},
}

func (s *realScanner) ReadStatus(req string) (string, error) {
	return readStatusFailureAsError(s.reader, s.tolerateLegacyStatus, req)
}

func readStatusFailureAsError(r io.Reader, tolerateLegacy bool, req string) (string, error) {
	var status [4]byte
	if _, err := io.ReadFull(r, status[:]); err != nil {
		return "", errors.WrapErrorf(err, errors.NetworkError, "error reading status for %s", req)
	}

	switch string(status[:]) {
	case StatusSuccess:
		return StatusSuccess, nil
	case StatusFailure:
		msg, err := readMessage(r)
		if err != nil {
			return "", errors.WrapErrf(err, "server returned error for %s, but couldn't read the error message", req)
		}
		return "", adbServerError(req, string(msg))
	}

	if tolerateLegacy {
		for _, legacy := range legacyStatusBytes {
			if status == legacy {
				return StatusSuccess, nil
			}
		}
	}

	return "", errors.Errorf(errors.ProtocolError, "invalid status %q for %s", status[:], req)
}

func adbServerError(request string, serverMsg string) error {
	var msg string
	if request == "" {
		msg = fmt.Sprintf("server error: %s", serverMsg)
	} else {
		msg = fmt.Sprintf("server error for %s request: %s", request, serverMsg)
	}
	return &errors.Err{
		Code:    errors.AdbError,
		Message: msg,
		Details: serverMsg,
	}
}

func (s *realScanner) ReadMessage() ([]byte, error) {
	return readMessage(s.reader)
}

func (s *realScanner) ReadUntilEof() ([]byte, error) {
	data, err := io.ReadAll(s.reader)
	if err != nil {
		return nil, errors.WrapErrorf(err, errors.NetworkError, "error reading until EOF")
	}
	return data, nil
}

func (s *realScanner) NewSyncScanner() SyncScanner {
	return NewSyncScanner(s.reader)
}

func (s *realScanner) Close() error {
	return errors.WrapErrorf(s.reader.Close(), errors.NetworkError, "error closing scanner")
}

var _ Scanner = &realScanner{}

// readMessage reads a hex length prefix and then exactly that many bytes.
// Text service payloads use ASCII hex lengths; the SYNC sub-protocol uses
// binary little-endian lengths and never goes through here.
func readMessage(r io.Reader) ([]byte, error) {
	length, err := readHexLength(r)
	if err != nil {
		return nil, err
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return data, errors.WrapErrorf(err, errors.NetworkError, "error reading message data")
	}
	return data, nil
}

// readHexLength reads the 4-digit hex length prefix of a text payload.
func readHexLength(r io.Reader) (int, error) {
	lengthHex := make([]byte, 4)
	if _, err := io.ReadFull(r, lengthHex); err != nil {
		return 0, errors.WrapErrorf(err, errors.NetworkError, "error reading length")
	}

	length, err := strconv.ParseInt(string(lengthHex), 16, 64)
	if err != nil {
		return 0, errors.Errorf(errors.ProtocolError, "could not parse hex length %q", lengthHex)
	}

	return int(length), nil
}
