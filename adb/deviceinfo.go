package adb

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DeviceInfo is one parsed line of the server's device list.
type DeviceInfo struct {
	// Serial is the adb identifier of the device ("usb serial"), e.g.
	// 05856558 or emulator-5554. Not to be confused with the stable
	// device identity, which survives serial changes on some emulators.
	Serial string

	State DeviceState

	// Extra fields from the long form of the list. Empty values are
	// preserved as empty strings, never dropped.
	Usb         string
	Product     string
	Model       string
	DeviceName  string
	TransportId string
}

// shortSerialLength is the display form of a serial.
const shortSerialLength = 8

// ShortSerial returns the first 8 characters of the serial, or the whole
// serial when it is already that short.
func (d *DeviceInfo) ShortSerial() string {
	if len(d.Serial) <= shortSerialLength {
		return d.Serial
	}
	return d.Serial[:shortSerialLength]
}

/*
The three line shapes of host:devices-l output, most specific first:

	<serial> <state> usb:<u> product:<p> model:<m> device:<d> transport_id:<t>
	<serial> <state> product:<p> model:<m> device:<d> transport_id:<t>
	<serial> <state>

Emulators and network devices have no usb field; offline and unauthorized
devices report only the short form.
*/
var (
	reDeviceFull = regexp.MustCompile(
		`^(\S+)\s+(\S+)\s+usb:(\S+)\s+product:(\S*)\s+model:(\S*)\s+device:(\S*)\s+transport_id:(\S+)`)
	reDeviceTruncated = regexp.MustCompile(
		`^(\S+)\s+(\S+)\s+product:(\S*)\s+model:(\S*)\s+device:(\S*)\s+transport_id:(\S+)`)
	reDeviceShort = regexp.MustCompile(`^(\S+)\s+(\S+)`)
)

func parseDeviceShort(line string) *DeviceInfo {
	m := reDeviceShort.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return &DeviceInfo{
		Serial: m[1],
		State:  parseDeviceState(m[2]),
	}
}

func parseDeviceLong(line string) *DeviceInfo {
	if m := reDeviceFull.FindStringSubmatch(line); m != nil {
		return &DeviceInfo{
			Serial:      m[1],
			State:       parseDeviceState(m[2]),
			Usb:         m[3],
			Product:     m[4],
			Model:       m[5],
			DeviceName:  m[6],
			TransportId: m[7],
		}
	}
	if m := reDeviceTruncated.FindStringSubmatch(line); m != nil {
		return &DeviceInfo{
			Serial:      m[1],
			State:       parseDeviceState(m[2]),
			Product:     m[3],
			Model:       m[4],
			DeviceName:  m[5],
			TransportId: m[6],
		}
	}
	return parseDeviceShort(line)
}

// parseDeviceList splits the response body into lines and runs lineParser
// over each. Lines that match no pattern are logged and skipped.
func parseDeviceList(list string, lineParser func(string) *DeviceInfo) []*DeviceInfo {
	devices := []*DeviceInfo{}

	for _, line := range strings.Split(list, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		device := lineParser(line)
		if device == nil {
			log.Warnf("skipping unparseable device line: %q", line)
			continue
		}
		devices = append(devices, device)
	}
	return devices
}
