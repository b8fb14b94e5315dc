// Package wire implements the client side of the adb server's wire
// protocol: length-prefixed ASCII requests, OKAY/FAIL status tags, and the
// binary SYNC sub-protocol used for file transfer.
//
// See https://android.googlesource.com/platform/system/core/+/master/adb/OVERVIEW.TXT
// and SYNC.TXT in the same directory for the protocol documents this package
// follows.
package wire

import (
	"io"

	"github.com/kvnxiao/aim/internal/errors"
)

// MaxMessageLength bounds outgoing request payloads. The server's own
// limit is not documented; this is far above any service string we send.
const MaxMessageLength = 1024 * 1024

/*
Conn is a normal connection to an adb server.

For most cases, usage looks something like:

	conn := wire.NewConn(wire.NewScanner(sock), wire.NewSender(sock))
	conn.SendMessage(data)
	conn.ReadStatus(req) // StatusSuccess, or an AdbError on FAIL
	conn.ReadMessage()
	conn.Close()

For some messages, the server will return more than one message (but still
a single status). Generally, after calling ReadStatus once, you should call
ReadMessage until it returns an io.EOF error. Note: the protocol docs seem
to suggest that connections will be kept open for multiple commands, but
this is not the case. The official client closes a connection immediately
after its read/write phases are done.
*/
type Conn struct {
	Scanner
	Sender
}

func NewConn(scanner Scanner, sender Sender) *Conn {
	return &Conn{scanner, sender}
}

// NewSyncConn returns connection that can operate in sync mode. The connection
// must already have been switched (by sending the sync command to a specific
// device), or the return connection will return an error.
func (c *Conn) NewSyncConn() *SyncConn {
	return &SyncConn{c.Scanner.NewSyncScanner(), c.Sender.NewSyncSender()}
}

// RoundTripSingleResponse sends a message to the server, and reads a single
// message response. If the reponse has a failure status code, returns it as an error.
func (c *Conn) RoundTripSingleResponse(req []byte) (resp []byte, err error) {
	if err = c.SendMessage(req); err != nil {
		return nil, err
	}

	if _, err = c.ReadStatus(string(req)); err != nil {
		return nil, err
	}

	return c.ReadMessage()
}

func (c *Conn) Close() error {
	errs := struct {
		SenderErr  error
		ScannerErr error
	}{
		SenderErr:  c.Sender.Close(),
		ScannerErr: c.Scanner.Close(),
	}

	if errs.ScannerErr != nil || errs.SenderErr != nil {
		return errors.Errorf(errors.NetworkError, "error closing connection: %+v", errs)
	}
	return nil
}

// MultiCloseable wraps c in a ReadWriteCloser that can be safely closed multiple times.
func MultiCloseable(c io.ReadWriteCloser) io.ReadWriteCloser {
	return &multiCloseable{ReadWriteCloser: c}
}

type multiCloseable struct {
	io.ReadWriteCloser
	closed bool
}

func (c *multiCloseable) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ReadWriteCloser.Close()
}
