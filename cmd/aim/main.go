// aim is a command-line client for the adb server: list devices, run shell
// commands, copy files, and manage the server, without shelling out to the
// adb binary for the protocol work.
package main

import (
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/kvnxiao/aim/adb"
	"github.com/kvnxiao/aim/cli"
	"github.com/kvnxiao/aim/config"
	"github.com/kvnxiao/aim/output"
)

var version = "dev"

func main() {
	app := kingpin.New("aim", "A friendlier client for the adb server.")
	app.Version(version)
	globals := cli.RegisterFlags(app)

	lsCmd := app.Command("ls", "List connected devices.")

	runCmd := app.Command("run", "Run a shell command on a device.")
	runCommand := runCmd.Arg("command", "The command to execute.").Required().String()
	runDevice := runCmd.Arg("device", "Device id, short id, name or prefix.").String()

	copyCmd := app.Command("copy", "Copy files to or from a device (device:path syntax).")
	copySrc := copyCmd.Arg("src", "Source paths; device:path for remote.").Required().Strings()
	copyDst := copyCmd.Arg("dst", "Destination path; device:path for remote.").Required().String()

	getpropCmd := app.Command("getprop", "Get device properties.")
	getpropNames := getpropCmd.Arg("propnames", "Comma-separated property names; empty for all.").String()
	getpropDevice := getpropCmd.Arg("device", "Device id, short id, name or prefix.").String()

	renameCmd := app.Command("rename", "Give a device a persistent name.")
	renameDevice := renameCmd.Arg("device", "Device id, short id, name or prefix.").Required().String()
	renameName := renameCmd.Arg("name", "New name for the device.").Required().String()

	serverCmd := app.Command("server", "Manage the adb server.")
	serverOp := serverCmd.Arg("operation", "start, stop, restart or status.").Required().Enum("start", "stop", "restart", "status")

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	globals.InitLogger()

	ctx, err := newContext(globals)
	if err == nil {
		switch command {
		case lsCmd.FullCommand():
			err = ctx.ls()
		case runCmd.FullCommand():
			err = ctx.run(*runCommand, *runDevice)
		case copyCmd.FullCommand():
			err = ctx.copy(*copySrc, *copyDst)
		case getpropCmd.FullCommand():
			err = ctx.getprop(*getpropNames, *getpropDevice)
		case renameCmd.FullCommand():
			err = ctx.rename(*renameDevice, *renameName)
		case serverCmd.FullCommand():
			err = ctx.serverOp(*serverOp)
		}
	}

	if err != nil {
		if code, ok := err.(exitCode); ok {
			os.Exit(int(code))
		}
		output.Error(os.Stderr, ctx.format(), err)
		os.Exit(1)
	}
}

// exitCode propagates a remote shell's exit status without printing an
// error of our own.
type exitCode int

func (e exitCode) Error() string { return "" }

// context bundles everything a command needs.
type context struct {
	globals *cli.GlobalConfig
	client  *adb.Adb
	config  *config.Config
}

func newContext(globals *cli.GlobalConfig) (*context, error) {
	client, err := adb.NewWithConfig(globals.ClientConfig())
	if err != nil {
		return &context{globals: globals}, err
	}
	return &context{
		globals: globals,
		client:  client,
		config:  config.Load(),
	}, nil
}

func (c *context) format() output.Format {
	if c == nil || c.globals == nil {
		return output.FormatTable
	}
	return c.globals.Format()
}

// listDevices enumerates devices and applies configured names over the
// generated pet-names.
func (c *context) listDevices() ([]*adb.DeviceDetails, error) {
	devices, err := c.client.ListDeviceDetails()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if name := c.config.DeviceName(d.DeviceId); name != "" {
			d.Name = name
		}
	}
	return devices, nil
}

// resolve picks exactly one device for token, honoring config aliases.
func (c *context) resolve(token string) (*adb.DeviceDetails, error) {
	devices, err := c.listDevices()
	if err != nil {
		return nil, err
	}
	return adb.ResolveDevice(devices, token, c.config.DeviceAliases())
}
