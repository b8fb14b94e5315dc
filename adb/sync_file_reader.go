package adb

import (
	"io"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
)

// syncFileReader wraps a SyncConn that has requested to receive a file.
// Each DATA frame is surfaced as it arrives; DONE turns into io.EOF.
type syncFileReader struct {
	scanner *wire.SyncConn

	// Reader for the current DATA chunk only. Nil before the first chunk
	// and after DONE.
	chunkReader io.Reader

	eof bool
}

var _ io.ReadCloser = &syncFileReader{}

func newSyncFileReader(s *wire.SyncConn) io.ReadCloser {
	return &syncFileReader{scanner: s}
}

func (r *syncFileReader) Read(buf []byte) (n int, err error) {
	if r.eof {
		return 0, io.EOF
	}

	if r.chunkReader == nil {
		chunkReader, err := readNextChunk(r.scanner)
		if err != nil {
			if err == io.EOF {
				r.eof = true
			}
			return 0, err
		}
		r.chunkReader = chunkReader
	}

	// A zero-length read must not consume a chunk.
	if len(buf) == 0 {
		return 0, nil
	}

	n, err = r.chunkReader.Read(buf)
	if err == io.EOF {
		// End of the current chunk, not the file.
		r.chunkReader = nil
		return n, nil
	}
	return n, err
}

func (r *syncFileReader) Close() error {
	return r.scanner.Close()
}

// readNextChunk reads the header of the next frame. Returns an io.Reader
// over the payload for DATA, io.EOF for DONE, and an error for FAIL or any
// foreign tag.
func readNextChunk(s *wire.SyncConn) (io.Reader, error) {
	tag, err := s.ReadOctetString()
	if err != nil {
		return nil, err
	}

	switch tag {
	case wire.SyncData:
		return s.ReadBytes()
	case wire.SyncDone:
		if _, err := s.ReadInt32(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	case wire.SyncFail:
		msg, err := s.ReadString()
		if err != nil {
			return nil, err
		}
		return nil, errors.Errorf(errors.FileTransferError, "receive failed: %s", msg)
	default:
		return nil, errors.Errorf(errors.ProtocolError, "unexpected sync tag %q while receiving", tag)
	}
}
