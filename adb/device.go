package adb

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
)

// shellV2Service is the service string of the v2 shell protocol. The v2
// framing itself is not decoded; raw mode just keeps the device pty from
// mangling output.
const shellV2Service = "shell,v2,TERM=xterm-256color,raw"

// exitCodeMarker is appended to wrapped shell commands so the exit code can
// be recovered from stdout, since the classic shell service doesn't return
// one.
const exitCodeMarker = "EXIT_CODE:"

// Device communicates with a specific Android device.
// To get an instance, call Device() on an Adb.
type Device struct {
	server     server
	descriptor DeviceDescriptor

	// Used to get device info.
	deviceListFunc func() ([]*DeviceInfo, error)
}

func (c *Device) String() string {
	return c.descriptor.String()
}

func (c *Device) Serial() (string, error) {
	attr, err := c.getAttribute("get-serialno")
	return attr, wrapClientError(err, c, "Serial")
}

func (c *Device) DevicePath() (string, error) {
	attr, err := c.getAttribute("get-devpath")
	return attr, wrapClientError(err, c, "DevicePath")
}

func (c *Device) State() (DeviceState, error) {
	attr, err := c.getAttribute("get-state")
	if err != nil {
		return StateUnknown, wrapClientError(err, c, "State")
	}
	return parseDeviceState(attr), nil
}

func (c *Device) DeviceInfo() (*DeviceInfo, error) {
	// Adb doesn't actually provide a way to get this for an individual device,
	// so we have to just list devices and find ourselves.

	serial, err := c.Serial()
	if err != nil {
		return nil, wrapClientError(err, c, "DeviceInfo(Serial)")
	}

	devices, err := c.deviceListFunc()
	if err != nil {
		return nil, wrapClientError(err, c, "DeviceInfo(ListDevices)")
	}

	for _, deviceInfo := range devices {
		if deviceInfo.Serial == serial {
			return deviceInfo, nil
		}
	}

	err = errors.Errorf(errors.DeviceNotFound, "device list doesn't contain serial %s", serial)
	return nil, wrapClientError(err, c, "DeviceInfo")
}

/*
RunCommand runs the specified commands on a shell on the device.

From the Android docs:

	Run 'command arg1 arg2 ...' in a shell on the device, and return
	its output and error streams. Note that arguments must be separated
	by spaces. If an argument contains a space, it must be quoted with
	double-quotes. Arguments cannot contain double quotes or things
	will go very wrong.

	Note that this is the non-interactive version of "adb shell"

Source: https://android.googlesource.com/platform/system/core/+/master/adb/SERVICES.TXT

This method quotes the arguments for you, and will return an error if any of
them contain double quotes. NUL bytes are stripped from the output and the
result is trimmed.
*/
func (c *Device) RunCommand(cmd string, args ...string) (string, error) {
	out, err := c.commandOutput("shell", cmd, args...)
	return out, wrapClientError(err, c, "RunCommand")
}

// RunCommandV2 is RunCommand over the v2 shell service.
func (c *Device) RunCommandV2(cmd string, args ...string) (string, error) {
	out, err := c.commandOutput(shellV2Service, cmd, args...)
	return out, wrapClientError(err, c, "RunCommandV2")
}

/*
RunCommandWithExitCode recovers the command's exit code by appending an echo
of a marker to the command line and parsing it back out of the tail of
stdout. The adb shell service itself does not report exit codes reliably.
*/
func (c *Device) RunCommandWithExitCode(cmd string, args ...string) (string, int, error) {
	line, err := prepareCommandLine(cmd, args...)
	if err != nil {
		return "", 0, wrapClientError(err, c, "RunCommandWithExitCode")
	}

	wrapped := fmt.Sprintf("%s; echo \"%s$?\"", line, exitCodeMarker)
	out, err := c.shellOutput("shell", wrapped)
	if err != nil {
		return "", 0, wrapClientError(err, c, "RunCommandWithExitCode")
	}

	idx := strings.LastIndex(out, exitCodeMarker)
	if idx == -1 {
		err = errors.Errorf(errors.ParseError, "no exit code marker in shell output")
		return out, 0, wrapClientError(err, c, "RunCommandWithExitCode")
	}
	code, convErr := strconv.Atoi(strings.TrimSpace(out[idx+len(exitCodeMarker):]))
	if convErr != nil {
		err = errors.Errorf(errors.ParseError, "bad exit code in shell output: %v", convErr)
		return out, 0, wrapClientError(err, c, "RunCommandWithExitCode")
	}
	return strings.TrimRight(out[:idx], "\r\n"), code, nil
}

func (c *Device) commandOutput(service, cmd string, args ...string) (string, error) {
	line, err := prepareCommandLine(cmd, args...)
	if err != nil {
		return "", err
	}
	return c.shellOutput(service, line)
}

func (c *Device) shellOutput(service, line string) (string, error) {
	conn, err := c.openShell(service, line)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	resp, err := conn.ReadUntilEof()
	if err != nil {
		return "", err
	}
	return cleanShellOutput(resp), nil
}

/*
OpenCommand starts cmd on the device and returns the connection as a byte
stream of its output. The caller owns the connection and must close it; it
cannot be reused for further requests.
*/
func (c *Device) OpenCommand(cmd string, args ...string) (*wire.Conn, error) {
	line, err := prepareCommandLine(cmd, args...)
	if err != nil {
		return nil, wrapClientError(err, c, "OpenCommand")
	}
	conn, err := c.openShell("shell", line)
	return conn, wrapClientError(err, c, "OpenCommand")
}

// StreamCommand runs cmd, reads its output until EOF, and then feeds each
// output line to callback. No line is delivered before the output has
// ended; OpenCommand gives access to the output as it arrives.
func (c *Device) StreamCommand(callback func(line string), cmd string, args ...string) error {
	conn, err := c.OpenCommand(cmd, args...)
	if err != nil {
		return err
	}
	defer conn.Close()

	data, err := conn.ReadUntilEof()
	if err != nil {
		return wrapClientError(err, c, "StreamCommand")
	}

	err = scanLines(bytes.NewReader(data), callback)
	return wrapClientError(err, c, "StreamCommand")
}

func (c *Device) openShell(service, line string) (conn *wire.Conn, err error) {
	conn, err = c.dialDevice()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	req := fmt.Sprintf("%s:%s", service, line)

	// Shell responses are special, they don't include a length header.
	// We read until the stream is closed.
	// So, we can't use conn.RoundTripSingleResponse.
	if err = conn.SendMessage([]byte(req)); err != nil {
		return nil, err
	}
	if _, err = conn.ReadStatus(req); err != nil {
		return nil, err
	}
	return conn, nil
}

// GetProp returns the value of a single system property, trimmed.
func (c *Device) GetProp(name string) (string, error) {
	out, err := c.commandOutput("shell", "getprop", name)
	return strings.TrimSpace(out), wrapClientError(err, c, "GetProp(%s)", name)
}

var rePropLine = regexp.MustCompile(`\[(.*?)\]:\s*\[(.*?)\]`)

// Properties extracts the full property table from getprop output.
func (c *Device) Properties() (map[string]string, error) {
	out, err := c.commandOutput("shell", "getprop")
	if err != nil {
		return nil, wrapClientError(err, c, "Properties")
	}

	props := make(map[string]string)
	for _, m := range rePropLine.FindAllStringSubmatch(out, -1) {
		props[m[1]] = m[2]
	}
	return props, nil
}

// Stat runs the STAT sync request for path and decodes the 72-byte reply.
func (c *Device) Stat(path string) (*wire.LstatResponse, error) {
	conn, err := c.getSyncConn()
	if err != nil {
		return nil, wrapClientError(err, c, "Stat(%s)", path)
	}
	defer conn.Close()

	entry, err := stat(conn, wire.SyncStat, path)
	return entry, wrapClientError(err, c, "Stat(%s)", path)
}

// OpenRead opens path on the device for reading via the sync protocol.
func (c *Device) OpenRead(path string) (io.ReadCloser, error) {
	conn, err := c.getSyncConn()
	if err != nil {
		return nil, wrapClientError(err, c, "OpenRead(%s)", path)
	}

	reader, err := receiveFile(conn, path)
	if err != nil {
		conn.Close()
		return nil, wrapClientError(err, c, "OpenRead(%s)", path)
	}
	return reader, nil
}

// getSyncConn dials the device and switches the connection to sync mode.
// The returned connection can only speak the sync sub-protocol and must be
// closed (or quit) when done; it is never returned to a pool.
func (c *Device) getSyncConn() (*wire.SyncConn, error) {
	conn, err := c.dialDevice()
	if err != nil {
		return nil, err
	}

	if err := wire.SendMessageString(conn, "sync:"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.ReadStatus("sync:"); err != nil {
		conn.Close()
		return nil, err
	}

	return conn.NewSyncConn(), nil
}

// dialDevice switches the connection to communicate directly with the device
// by requesting the transport defined by the DeviceDescriptor.
func (c *Device) dialDevice() (*wire.Conn, error) {
	conn, err := c.server.Dial()
	if err != nil {
		return nil, err
	}

	req := fmt.Sprintf("host:%s", c.descriptor.getTransportDescriptor())
	if err = wire.SendMessageString(conn, req); err != nil {
		conn.Close()
		return nil, errors.WrapErrf(err, "error connecting to device '%s'", c.descriptor)
	}

	if _, err = conn.ReadStatus(req); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// getAttribute returns the first message returned by the server by running
// <host-prefix>:<attr>, where host-prefix is determined from the DeviceDescriptor.
func (c *Device) getAttribute(attr string) (string, error) {
	resp, err := roundTripSingleResponse(c.server,
		fmt.Sprintf("%s:%s", c.descriptor.getHostPrefix(), attr))
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// prepareCommandLine validates the command and argument strings, quotes
// arguments if required, and joins them into a valid adb command string.
func prepareCommandLine(cmd string, args ...string) (string, error) {
	if isBlank(cmd) {
		return "", errors.AssertionErrorf("command cannot be empty")
	}

	for i, arg := range args {
		if strings.ContainsRune(arg, '"') {
			return "", errors.Errorf(errors.ParseError, "arg at index %d contains an invalid double quote: %s", i, arg)
		}
		if containsWhitespace(arg) {
			args[i] = fmt.Sprintf("\"%s\"", arg)
		}
	}

	// Prepend the command to the args array.
	if len(args) > 0 {
		cmd = fmt.Sprintf("%s %s", cmd, strings.Join(args, " "))
	}

	return cmd, nil
}

// cleanShellOutput strips NUL bytes, normalizes the pty's \r\n back to \n,
// and trims surrounding whitespace.
func cleanShellOutput(out []byte) string {
	s := strings.ReplaceAll(string(out), "\x00", "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
