package adb

import (
	"testing"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/stretchr/testify/assert"
)

func TestServerVersion(t *testing.T) {
	s := &MockServer{
		Status:   wire.StatusSuccess,
		Messages: []string{"0029"},
	}
	client := &Adb{s}

	version, err := client.ServerVersion()
	assert.NoError(t, err)
	assert.Equal(t, "host:version", s.Requests[0])
	assert.Equal(t, 0x29, version)
}

func TestServerVersionUnparseable(t *testing.T) {
	s := &MockServer{
		Status:   wire.StatusSuccess,
		Messages: []string{"not hex"},
	}
	client := &Adb{s}

	_, err := client.ServerVersion()
	assert.Error(t, err)
}

func TestDeviceWatcherParsesSnapshots(t *testing.T) {
	s := &MockServer{
		Status:   wire.StatusSuccess,
		Messages: []string{"abc\tdevice\ndef\toffline"},
	}
	watcher := (&Adb{s}).NewDeviceWatcher()

	snapshot, ok := <-watcher.C
	assert.True(t, ok)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "abc", snapshot[0].Serial)
	assert.Equal(t, StateOffline, snapshot[1].State)
	assert.Equal(t, "host:track-devices", s.Requests[0])

	// The mock stream ends after one snapshot; the channel closes.
	_, ok = <-watcher.C
	assert.False(t, ok)
}
