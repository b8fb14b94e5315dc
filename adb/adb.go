// Package adb is a client for the Android Debug Bridge server. It speaks
// the server's wire protocol directly over TCP instead of shelling out to
// the adb binary.
package adb

import (
	"fmt"
	"strconv"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
)

/*
Adb communicates with host services on the adb server.

Eg.

	client, _ := adb.New()
	client.ListDevices()

See list of services at https://android.googlesource.com/platform/system/core/+/master/adb/SERVICES.TXT.
*/
type Adb struct {
	server server
}

// New creates a new Adb client that uses the default ServerConfig.
func New() (*Adb, error) {
	return NewWithConfig(ServerConfig{})
}

func NewWithConfig(config ServerConfig) (*Adb, error) {
	server, err := newServer(config)
	if err != nil {
		return nil, err
	}
	return &Adb{server}, nil
}

// Dial establishes a connection with the adb server.
func (c *Adb) Dial() (*wire.Conn, error) {
	return c.server.Dial()
}

// ServerAddress returns the host:port this client talks to.
func (c *Adb) ServerAddress() string {
	return c.server.Address()
}

// StartServer starts the adb server if it's not running.
func (c *Adb) StartServer() error {
	return c.server.Start()
}

// ServerAlive probes whether a server is accepting connections, without
// starting one.
func (c *Adb) ServerAlive() bool {
	return c.server.Probe()
}

/*
KillServer tells the server to quit immediately.

Corresponds to the command:

	adb kill-server
*/
func (c *Adb) KillServer() error {
	return c.server.Kill()
}

// ServerVersion asks the adb server for its internal version number.
func (c *Adb) ServerVersion() (int, error) {
	resp, err := roundTripSingleResponse(c.server, "host:version")
	if err != nil {
		return 0, wrapClientError(err, c, "ServerVersion")
	}

	version, err := c.parseServerVersion(resp)
	if err != nil {
		return 0, wrapClientError(err, c, "ServerVersion")
	}
	return version, nil
}

func (c *Adb) parseServerVersion(versionRaw []byte) (int, error) {
	versionStr := string(versionRaw)
	version, err := strconv.ParseInt(versionStr, 16, 32)
	if err != nil {
		return 0, errors.WrapErrorf(err, errors.ParseError, "error parsing server version: %s", versionStr)
	}
	return int(version), nil
}

func (c *Adb) Device(descriptor DeviceDescriptor) *Device {
	return &Device{
		server:         c.server,
		descriptor:     descriptor,
		deviceListFunc: c.ListDevices,
	}
}

func (c *Adb) NewDeviceWatcher() *DeviceWatcher {
	return newDeviceWatcher(c.server)
}

/*
ListDeviceSerials returns the serial numbers of all attached devices.

Corresponds to the command:

	adb devices
*/
func (c *Adb) ListDeviceSerials() ([]string, error) {
	resp, err := roundTripSingleResponse(c.server, "host:devices")
	if err != nil {
		return nil, wrapClientError(err, c, "ListDeviceSerials")
	}

	devices := parseDeviceList(string(resp), parseDeviceShort)
	serials := make([]string, len(devices))
	for i, dev := range devices {
		serials[i] = dev.Serial
	}
	return serials, nil
}

/*
ListDevices returns the list of connected devices.

Corresponds to the command:

	adb devices -l
*/
func (c *Adb) ListDevices() ([]*DeviceInfo, error) {
	resp, err := roundTripSingleResponse(c.server, "host:devices-l")
	if err != nil {
		return nil, wrapClientError(err, c, "ListDevices")
	}

	return parseDeviceList(string(resp), parseDeviceLong), nil
}

// roundTripSingleResponse sends a host request and reads a single
// hex-length-prefixed response body.
func roundTripSingleResponse(s server, req string) ([]byte, error) {
	conn, err := s.Dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.RoundTripSingleResponse([]byte(req))
}

// roundTripSingleNoResponse sends a host request that is answered only by a
// status tag.
func roundTripSingleNoResponse(s server, req string) error {
	conn, err := s.Dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err = conn.SendMessage([]byte(req)); err != nil {
		return err
	}
	_, err = conn.ReadStatus(req)
	return err
}

func wrapClientError(err error, client interface{}, operation string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Err); !ok {
		panic("err is not an *Err: " + err.Error())
	}

	clientType := "Adb"
	if _, ok := client.(*Device); ok {
		clientType = "Device"
	}

	return &errors.Err{
		Code:    err.(*errors.Err).Code,
		Cause:   err,
		Message: fmt.Sprintf("error performing %s on %s", fmt.Sprintf(operation, args...), clientType),
		Details: client,
	}
}
