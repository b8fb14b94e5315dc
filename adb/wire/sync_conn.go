package wire

// Sync request/response tags. 4 ASCII bytes on the wire, always followed by
// a u32 little-endian value: a length for string-carrying frames, a raw
// integer for DONE (mtime) and OKAY (zero).
const (
	SyncSend = "SEND"
	SyncRecv = "RECV"
	SyncData = "DATA"
	SyncDone = "DONE"
	SyncStat = "STAT"
	SyncSta2 = "STA2"
	SyncOkay = "OKAY"
	SyncFail = "FAIL"
	SyncQuit = "QUIT"
)

// SyncMaxChunkSize is the largest payload the server accepts in a single
// DATA frame.
const SyncMaxChunkSize = 64 * 1024

/*
SyncConn is a connection to the adb server in sync mode. The connection
enters sync mode after the "sync:" service has been opened on a
device-selected connection; from then on every frame uses the 8-byte binary
SYNC header and the hex framing of the outer protocol no longer applies.

A connection in sync mode cannot be reused for regular requests: it must be
terminated with SendQuit (or simply closed) once the transfer is done.
*/
type SyncConn struct {
	SyncScanner
	SyncSender
}

// SendQuit politely ends the sync session with a QUIT frame (tag plus a
// zero u32). The server closes the socket after receiving it.
func (c *SyncConn) SendQuit() error {
	if err := c.SendOctetString(SyncQuit); err != nil {
		return err
	}
	return c.SendInt32(0)
}

// Close closes both the sender and the scanner, and returns the first error
// it encounters.
func (c *SyncConn) Close() error {
	if err := c.SyncScanner.Close(); err != nil {
		return err
	}
	return c.SyncSender.Close()
}
