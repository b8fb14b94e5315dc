package wire

import (
	"testing"

	"github.com/kvnxiao/aim/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestReadStatusOkay(t *testing.T) {
	s := NewScanner(bufferWith([]byte("OKAY")))

	status, err := s.ReadStatus("req")
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
}

func TestReadStatusFail(t *testing.T) {
	s := NewScanner(bufferWith([]byte("FAIL000edevice offline")))

	_, err := s.ReadStatus("shell:ls")
	assert.True(t, errors.HasErrCode(err, errors.AdbError))
	assert.Equal(t, "device offline", errors.DetailsOf(err))
}

func TestReadStatusFailEmptyMessage(t *testing.T) {
	// A FAIL with a zero-length message is a valid error.
	s := NewScanner(bufferWith([]byte("FAIL0000")))

	_, err := s.ReadStatus("req")
	assert.True(t, errors.HasErrCode(err, errors.AdbError))
}

func TestReadStatusInvalidTag(t *testing.T) {
	s := NewScanner(bufferWith([]byte("WHAT")))

	_, err := s.ReadStatus("req")
	assert.True(t, errors.HasErrCode(err, errors.ProtocolError))
}

func TestReadStatusLegacyBytesRejectedByDefault(t *testing.T) {
	s := NewScanner(bufferWith([]byte{8, 0, 0, 0}))

	_, err := s.ReadStatus("req")
	assert.True(t, errors.HasErrCode(err, errors.ProtocolError))
}

func TestReadStatusLegacyBytesAcceptedWhenEnabled(t *testing.T) {
	s := NewLegacyStatusScanner(bufferWith([]byte{8, 0, 0, 0}))

	status, err := s.ReadStatus("req")
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
}

func TestReadStatusShortRead(t *testing.T) {
	s := NewScanner(bufferWith([]byte("OK")))

	_, err := s.ReadStatus("req")
	assert.True(t, errors.HasErrCode(err, errors.NetworkError))
}

func TestReadMessage(t *testing.T) {
	s := NewScanner(bufferWith([]byte("0005hello")))

	msg, err := s.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(msg))
}

func TestReadMessageBadLength(t *testing.T) {
	s := NewScanner(bufferWith([]byte("zzzzhello")))

	_, err := s.ReadMessage()
	assert.True(t, errors.HasErrCode(err, errors.ProtocolError))
}

// The host:version exchange from end to end: OKAY, then a 4-byte payload
// whose text is the version in hex.
func TestVersionExchange(t *testing.T) {
	buf := &closeableBuffer{}
	conn := NewConn(NewScanner(bufferWith([]byte("OKAY00040029"))), NewSender(buf))

	resp, err := conn.RoundTripSingleResponse([]byte("host:version"))
	assert.NoError(t, err)
	assert.Equal(t, "000chost:version", buf.String())
	assert.Equal(t, "0029", string(resp))
}

func TestReadUntilEof(t *testing.T) {
	s := NewScanner(bufferWith([]byte("all of the remaining bytes")))

	data, err := s.ReadUntilEof()
	assert.NoError(t, err)
	assert.Equal(t, "all of the remaining bytes", string(data))
}
