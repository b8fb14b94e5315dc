package adb

// DeviceState is the second whitespace-delimited token of a device list
// line.
type DeviceState string

const (
	StateDevice       DeviceState = "device"
	StateOffline      DeviceState = "offline"
	StateUnauthorized DeviceState = "unauthorized"
	StateBootloader   DeviceState = "bootloader"
	StateRecovery     DeviceState = "recovery"
	StateSideload     DeviceState = "sideload"
	StateUnknown      DeviceState = "unknown"
)

func parseDeviceState(s string) DeviceState {
	switch DeviceState(s) {
	case StateDevice, StateOffline, StateUnauthorized, StateBootloader, StateRecovery, StateSideload:
		return DeviceState(s)
	}
	return StateUnknown
}

// Online reports whether the device can accept device services.
func (s DeviceState) Online() bool {
	return s == StateDevice
}
