package adb

import "fmt"

type deviceDescriptorType int

const (
	// host:tport:any
	deviceAny deviceDescriptorType = iota
	// host:tport:serial:<serial>
	deviceSerial
	// host:transport:<serial> (legacy selection service)
	deviceSerialLegacy
)

/*
DeviceDescriptor selects which device a Device talks to.

The modern tport services are preferred; the legacy transport service is
kept for servers that predate it.
*/
type DeviceDescriptor struct {
	descriptorType deviceDescriptorType

	// Only used if descriptorType is not deviceAny.
	serial string
}

// AnyDevice returns a descriptor that selects whichever single device the
// server has. The server fails the selection if more than one device is
// connected.
func AnyDevice() DeviceDescriptor {
	return DeviceDescriptor{descriptorType: deviceAny}
}

func DeviceWithSerial(serial string) DeviceDescriptor {
	return DeviceDescriptor{
		descriptorType: deviceSerial,
		serial:         serial,
	}
}

// DeviceWithSerialLegacy selects by serial using the old
// host:transport:<serial> service.
func DeviceWithSerialLegacy(serial string) DeviceDescriptor {
	return DeviceDescriptor{
		descriptorType: deviceSerialLegacy,
		serial:         serial,
	}
}

func (d DeviceDescriptor) String() string {
	switch d.descriptorType {
	case deviceAny:
		return "any device"
	default:
		return fmt.Sprintf("serial %s", d.serial)
	}
}

// getTransportDescriptor returns the selection service sent (prefixed with
// "host:") as the first request on a device connection.
func (d DeviceDescriptor) getTransportDescriptor() string {
	switch d.descriptorType {
	case deviceAny:
		return "tport:any"
	case deviceSerial:
		return fmt.Sprintf("tport:serial:%s", d.serial)
	case deviceSerialLegacy:
		return fmt.Sprintf("transport:%s", d.serial)
	}
	panic(fmt.Sprintf("invalid descriptor type: %v", d.descriptorType))
}

// getHostPrefix returns the prefix used for device host services
// (host-serial:<serial>:<service> when a serial is known).
func (d DeviceDescriptor) getHostPrefix() string {
	switch d.descriptorType {
	case deviceAny:
		return "host"
	default:
		return fmt.Sprintf("host-serial:%s", d.serial)
	}
}
