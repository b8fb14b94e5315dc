package adb

import (
	"net"
	"time"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
)

// Dialer knows how to create connections to an adb server.
type Dialer interface {
	Dial(address string, timeout time.Duration, legacyStatus bool) (*wire.Conn, error)
}

type tcpDialer struct{}

// Dial connects to the adb server at address. Read and write deadlines are
// enforced per operation from the moment the connection is established.
func (tcpDialer) Dial(address string, timeout time.Duration, legacyStatus bool) (*wire.Conn, error) {
	netConn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, errors.WrapErrorf(err, errors.NetworkError, "error dialing %s", address)
	}

	// net.Conn can't be closed more than once, but wire.Conn will try to close
	// both sender and scanner, so we need to wrap it.
	safeConn := wire.MultiCloseable(&deadlineConn{Conn: netConn, timeout: timeout})

	var scanner wire.Scanner
	if legacyStatus {
		scanner = wire.NewLegacyStatusScanner(safeConn)
	} else {
		scanner = wire.NewScanner(safeConn)
	}
	return wire.NewConn(scanner, wire.NewSender(safeConn)), nil
}

/*
deadlineConn applies the configured timeout to every read and write
individually, and reports a deadline miss as a TimeoutError carrying the
elapsed seconds. Timeouts are never retried here; the caller decides.
*/
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Read(p)
	return n, c.wrapTimeout(err)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Write(p)
	return n, c.wrapTimeout(err)
}

func (c *deadlineConn) wrapTimeout(err error) error {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return &errors.Err{
			Code:    errors.TimeoutError,
			Message: "deadline exceeded",
			Details: c.timeout.Seconds(),
			Cause:   err,
		}
	}
	return err
}

// resolveHost maps the literal "localhost" to 127.0.0.1. On mixed stacks
// name resolution can prefer the IPv6 loopback, which the adb server does
// not listen on.
func resolveHost(host string) string {
	if host == "localhost" {
		return "127.0.0.1"
	}
	return host
}
