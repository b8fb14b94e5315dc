package wire

import (
	"bytes"
	"io"
)

// closeableBuffer adapts bytes.Buffer for the Sender/Scanner constructors.
type closeableBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closeableBuffer) Close() error {
	b.closed = true
	return nil
}

var _ io.ReadWriteCloser = &closeableBuffer{}

func bufferWith(data []byte) *closeableBuffer {
	b := &closeableBuffer{}
	b.Write(data)
	return b
}
