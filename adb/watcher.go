package adb

import (
	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
	log "github.com/sirupsen/logrus"
)

/*
DeviceWatcher subscribes to the host:track-devices service. After the
initial OKAY the server keeps the connection open and writes a fresh
hex-length-prefixed device list every time the set of devices changes.

Snapshots are delivered on C until Shutdown is called or the server closes
the stream; the channel is closed afterwards and Err reports what ended the
watch.
*/
type DeviceWatcher struct {
	// C receives one parsed snapshot per server update.
	C <-chan []*DeviceInfo

	conn *wire.Conn
	err  error
	done chan struct{}
}

func newDeviceWatcher(s server) *DeviceWatcher {
	ch := make(chan []*DeviceInfo)
	w := &DeviceWatcher{C: ch, done: make(chan struct{})}

	conn, err := s.Dial()
	if err != nil {
		w.err = err
		close(ch)
		return w
	}

	req := "host:track-devices"
	if err := wire.SendMessageString(conn, req); err != nil {
		conn.Close()
		w.err = err
		close(ch)
		return w
	}
	if _, err := conn.ReadStatus(req); err != nil {
		conn.Close()
		w.err = err
		close(ch)
		return w
	}

	w.conn = conn
	go w.loop(ch)
	return w
}

func (w *DeviceWatcher) loop(ch chan<- []*DeviceInfo) {
	defer close(ch)
	for {
		msg, err := w.conn.ReadMessage()
		if err != nil {
			select {
			case <-w.done:
				// Shutdown closed the socket under us; not an error.
			default:
				if !errors.HasErrCode(err, errors.NetworkError) {
					log.Debugf("device watcher stopped: %v", err)
				}
				w.err = err
			}
			return
		}
		ch <- parseDeviceList(string(msg), parseDeviceShort)
	}
}

// Shutdown stops watching and closes C.
func (w *DeviceWatcher) Shutdown() {
	if w.conn != nil {
		close(w.done)
		w.conn.Close()
	}
}

// Err returns the error that terminated the watch, if any.
func (w *DeviceWatcher) Err() error {
	return w.err
}
