package adb

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
	"github.com/kvnxiao/aim/progress"
	log "github.com/sirupsen/logrus"
)

/*
PushFile copies the local file at localPath to remotePath on the device
using the sync protocol, reporting progress to sink.

The destination is normalized before the SEND header goes out: if
remotePath names a directory (trailing slash, or the STA2 pre-check says
the path exists and is a directory), the source file's basename is
appended. Skipping this would silently truncate the directory into a file
on the device.

On failure the partial remote file is left in place; the caller decides
whether to retry or clean up.
*/
func (c *Device) PushFile(localPath, remotePath string, sink progress.Sink) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return wrapClientError(errors.WrapErrorf(err, errors.FileTransferError,
			"cannot read local file %s", localPath), c, "PushFile")
	}
	if !info.Mode().IsRegular() {
		return wrapClientError(errors.Errorf(errors.FileTransferError,
			"can only push regular files: %s", localPath), c, "PushFile")
	}

	local, err := os.Open(localPath)
	if err != nil {
		return wrapClientError(errors.WrapErrorf(err, errors.FileTransferError,
			"cannot open local file %s", localPath), c, "PushFile")
	}
	defer local.Close()

	conn, err := c.getSyncConn()
	if err != nil {
		return wrapClientError(err, c, "PushFile(%s)", remotePath)
	}
	defer conn.Close()

	dst := normalizePushDestination(conn, remotePath, filepath.Base(localPath))

	sink.Start(info.Size())
	err = sendFile(conn, local, dst, info, sink)
	sink.Finish(err)
	if err != nil {
		return wrapClientError(err, c, "PushFile(%s)", dst)
	}
	return nil
}

/*
PullFile copies remotePath from the device into localPath, reporting
progress to sink. The remote file is stat'd first so the sink can show a
real total; after a successful transfer the remote permission bits (masked
to 0o777) are applied to the local file on POSIX hosts.
*/
func (c *Device) PullFile(remotePath, localPath string, sink progress.Sink) error {
	conn, err := c.getSyncConn()
	if err != nil {
		return wrapClientError(err, c, "PullFile(%s)", remotePath)
	}
	defer conn.Close()

	entry, err := stat(conn, wire.SyncStat, remotePath)
	if err != nil {
		return wrapClientError(err, c, "PullFile(%s)", remotePath)
	}
	if !entry.IsFile() {
		return wrapClientError(errors.Errorf(errors.FileTransferError,
			"can only pull regular files: %s is a %s", remotePath, entry.FileType()),
			c, "PullFile")
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapClientError(errors.WrapErrorf(err, errors.FileTransferError,
				"cannot create directory %s", dir), c, "PullFile")
		}
	}
	local, err := os.Create(localPath)
	if err != nil {
		return wrapClientError(errors.WrapErrorf(err, errors.FileTransferError,
			"cannot create local file %s", localPath), c, "PullFile")
	}
	defer local.Close()

	// A sync session accepts further requests after the stat reply, so the
	// transfer continues on the same connection.
	sink.Start(int64(entry.Size))
	err = receiveToWriter(conn, remotePath, local, sink)
	sink.Finish(err)
	if err != nil {
		// Partial-file artifacts are not auto-deleted.
		return wrapClientError(err, c, "PullFile(%s)", remotePath)
	}

	if runtime.GOOS != "windows" {
		mode := os.FileMode(entry.Mode & 0o777)
		if chmodErr := os.Chmod(localPath, mode); chmodErr != nil {
			log.Warnf("could not restore permissions on %s: %v", localPath, chmodErr)
		}
	}
	return nil
}

// normalizePushDestination appends base to remotePath when the remote side
// is a directory. The STA2 pre-check is advisory: a path that can't be
// stat'd is used as given.
func normalizePushDestination(conn *wire.SyncConn, remotePath, base string) string {
	if strings.HasSuffix(remotePath, "/") {
		return path.Join(remotePath, base)
	}
	if entry, err := stat(conn, wire.SyncSta2, remotePath); err == nil && entry.IsDir() {
		return path.Join(remotePath, base)
	}
	return remotePath
}

// sendFile streams local through SEND/DATA frames and reads the trailer.
func sendFile(conn *wire.SyncConn, local io.Reader, remotePath string, info os.FileInfo, sink progress.Sink) error {
	// The SEND header payload is "<path>,<mode>" where mode is the decimal
	// value of the permission bits.
	header := remotePath + "," + strconv.FormatUint(uint64(info.Mode().Perm()), 10)
	if err := conn.SendOctetString(wire.SyncSend); err != nil {
		return err
	}
	if err := wire.SendSyncString(conn, header); err != nil {
		return err
	}

	buf := make([]byte, wire.SyncMaxChunkSize)
	for {
		n, err := local.Read(buf)
		if n > 0 {
			if err := conn.SendOctetString(wire.SyncData); err != nil {
				return err
			}
			if err := conn.SendBytes(buf[:n]); err != nil {
				return err
			}
			sink.Advance(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WrapErrorf(err, errors.FileTransferError, "error reading local file")
		}
	}

	if err := conn.SendOctetString(wire.SyncDone); err != nil {
		return err
	}
	if err := conn.SendTime(info.ModTime()); err != nil {
		return err
	}

	// Trailer: OKAY + u32(0), or FAIL + message.
	if _, err := conn.ReadStatus(wire.SyncSend); err != nil {
		if errors.HasErrCode(err, errors.AdbError) {
			return syncTransferError(err)
		}
		return err
	}
	if _, err := conn.ReadInt32(); err != nil {
		return err
	}
	return nil
}

// receiveToWriter drives the RECV loop, copying DATA payloads into w.
func receiveToWriter(conn *wire.SyncConn, remotePath string, w io.Writer, sink progress.Sink) error {
	if err := conn.SendOctetString(wire.SyncRecv); err != nil {
		return err
	}
	if err := wire.SendSyncString(conn, remotePath); err != nil {
		return err
	}

	for {
		tag, err := conn.ReadOctetString()
		if err != nil {
			return err
		}

		switch tag {
		case wire.SyncData:
			chunk, err := conn.ReadBytes()
			if err != nil {
				return err
			}
			n, err := io.Copy(w, chunk)
			if err != nil {
				return errors.WrapErrorf(err, errors.FileTransferError, "error writing local file")
			}
			sink.Advance(n)
		case wire.SyncDone:
			// DONE carries a u32 the same as every other frame.
			if _, err := conn.ReadInt32(); err != nil {
				return err
			}
			return nil
		case wire.SyncFail:
			msg, err := conn.ReadString()
			if err != nil {
				return err
			}
			return errors.Errorf(errors.FileTransferError, "pull of %s failed: %s", remotePath, msg)
		default:
			return errors.Errorf(errors.ProtocolError, "unexpected sync tag %q during pull", tag)
		}
	}
}

// stat sends a STAT or STA2 request and decodes the fixed 72-byte reply.
func stat(conn *wire.SyncConn, tag, path string) (*wire.LstatResponse, error) {
	if err := conn.SendOctetString(tag); err != nil {
		return nil, err
	}
	if err := wire.SendSyncString(conn, path); err != nil {
		return nil, err
	}

	buf := make([]byte, wire.LstatResponseLength)
	if err := conn.ReadExact(buf); err != nil {
		return nil, err
	}
	return wire.DecodeLstat(buf)
}

// receiveFile sends RECV and returns a reader over the file contents. The
// reader owns the sync connection and closes it when closed.
func receiveFile(conn *wire.SyncConn, path string) (io.ReadCloser, error) {
	if err := conn.SendOctetString(wire.SyncRecv); err != nil {
		return nil, err
	}
	if err := wire.SendSyncString(conn, path); err != nil {
		return nil, err
	}
	return newSyncFileReader(conn), nil
}

// syncTransferError rebrands a sync FAIL as a file-transfer error, keeping
// the server's message verbatim.
func syncTransferError(err error) error {
	e := err.(*errors.Err)
	return &errors.Err{
		Code:    errors.FileTransferError,
		Message: e.Message,
		Details: e.Details,
		Cause:   e,
	}
}
