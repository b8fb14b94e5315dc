package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kvnxiao/aim/adb"
	"github.com/kvnxiao/aim/config"
	"github.com/kvnxiao/aim/internal/errors"
	"github.com/kvnxiao/aim/output"
)

func (c *context) ls() error {
	devices, err := c.listDevices()
	if err != nil {
		return err
	}
	return output.Devices(os.Stdout, c.format(), devices)
}

func (c *context) run(command, deviceToken string) error {
	device, err := c.resolve(deviceToken)
	if err != nil {
		return err
	}

	command = c.config.ResolveAlias(command)
	out, code, err := c.client.Device(adb.DeviceWithSerial(device.Serial)).RunCommandWithExitCode(command)
	if err != nil {
		return err
	}

	if out != "" {
		fmt.Println(out)
	}
	if code != 0 {
		return exitCode(code)
	}
	return nil
}

func (c *context) getprop(propnames, deviceToken string) error {
	device, err := c.resolve(deviceToken)
	if err != nil {
		return err
	}
	dev := c.client.Device(adb.DeviceWithSerial(device.Serial))

	var props map[string]string
	if strings.TrimSpace(propnames) == "" {
		props, err = dev.Properties()
		if err != nil {
			return err
		}
	} else {
		names := []string{}
		for _, name := range strings.Split(propnames, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		props = c.client.GetProps(adb.DeviceWithSerial(device.Serial), names)
	}

	return output.Properties(os.Stdout, c.format(), props)
}

func (c *context) rename(deviceToken, name string) error {
	device, err := c.resolve(deviceToken)
	if err != nil {
		return err
	}
	if err := config.SetDeviceName(device.ShortId, name); err != nil {
		return err
	}
	fmt.Printf("%s is now %q\n", device.Serial, name)
	return nil
}

func (c *context) serverOp(op string) error {
	switch op {
	case "start":
		return c.client.StartServer()
	case "stop":
		return c.client.KillServer()
	case "restart":
		if err := c.client.KillServer(); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
		return c.client.StartServer()
	default: // status
		if !c.client.ServerAlive() {
			fmt.Printf("server not running on %s\n", c.client.ServerAddress())
			return nil
		}
		version, err := c.client.ServerVersion()
		if err != nil {
			return err
		}
		fmt.Printf("server running on %s, version %04x\n", c.client.ServerAddress(), version)
		return nil
	}
}

// endpoint is one side of a copy: a local path, or a device plus a remote
// path.
type endpoint struct {
	device *adb.DeviceDetails
	path   string
}

func (e endpoint) remote() bool { return e.device != nil }

func (c *context) copy(srcs []string, dst string) error {
	dstEp, err := c.parseEndpoint(dst)
	if err != nil {
		return err
	}

	for _, src := range srcs {
		srcEp, err := c.parseEndpoint(src)
		if err != nil {
			return err
		}
		if err := c.copyOne(srcEp, dstEp); err != nil {
			return err
		}
	}
	return nil
}

func (c *context) copyOne(src, dst endpoint) error {
	sink := c.globals.ProgressSink()
	switch {
	case src.remote() && dst.remote():
		return errors.Errorf(errors.InvalidCopy, "device-to-device copy is not supported")
	case !src.remote() && !dst.remote():
		return errors.Errorf(errors.InvalidCopy, "both %s and %s are local; nothing to do with a device", src.path, dst.path)
	case src.remote():
		dev := c.client.Device(adb.DeviceWithSerial(src.device.Serial))
		return dev.PullFile(src.path, localDestination(dst.path, src.path), sink)
	default:
		dev := c.client.Device(adb.DeviceWithSerial(dst.device.Serial))
		return dev.PushFile(src.path, dst.path, sink)
	}
}

/*
parseEndpoint splits "device:path" copy operands. The text before the first
colon is resolved as a device token; an empty token picks the default
device. Anything without a colon, or whose prefix resolves to no device,
is a local path.
*/
func (c *context) parseEndpoint(arg string) (endpoint, error) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return endpoint{path: arg}, nil
	}

	token, path := arg[:idx], arg[idx+1:]
	device, err := c.resolve(token)
	if err != nil {
		if token != "" && errors.HasErrCode(err, errors.DeviceNotFound) {
			// Not a device prefix; treat the whole operand as local
			// (e.g. a Windows drive path).
			return endpoint{path: arg}, nil
		}
		return endpoint{}, err
	}
	return endpoint{device: device, path: path}, nil
}

// localDestination maps a pull destination to a concrete file path,
// appending the remote basename when the destination is a directory.
func localDestination(dst, remotePath string) string {
	base := remotePath
	if idx := strings.LastIndex(remotePath, "/"); idx != -1 {
		base = remotePath[idx+1:]
	}
	if dst == "" || dst == "." {
		return base
	}
	if strings.HasSuffix(dst, "/") {
		return dst + base
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return dst + "/" + base
	}
	return dst
}
