package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/kvnxiao/aim/adb"
	"github.com/kvnxiao/aim/internal/errors"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Keep assertions byte-stable regardless of the test terminal.
	color.NoColor = true
}

func sampleDevices() []*adb.DeviceDetails {
	return []*adb.DeviceDetails{
		{
			DeviceInfo: adb.DeviceInfo{
				Serial:      "emulator-5554",
				State:       adb.StateDevice,
				Product:     "sdk_gphone64_x86_64",
				Model:       "sdk_gphone64_x86_64",
				DeviceName:  "emu64xa",
				TransportId: "3",
			},
			Brand:    "google",
			DeviceId: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
			ShortId:  "2cf24dba5fb0",
			Name:     "brave-lynx",
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	assert.NoError(t, err)
	assert.Equal(t, FormatJson, f)

	_, err = ParseFormat("yaml")
	assert.True(t, errors.HasErrCode(err, errors.ParseError))
}

func TestDevicesJson(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Devices(&buf, FormatJson, sampleDevices()))

	var decoded []map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "emulator-5554", decoded[0]["serial"])
	assert.Equal(t, "2cf24dba5fb0", decoded[0]["device_id_short"])
	assert.Equal(t, "brave-lynx", decoded[0]["device_name"])
	// Emulators have no usb field; it is omitted, not emitted empty.
	_, hasUsb := decoded[0]["usb"]
	assert.False(t, hasUsb)
}

func TestDevicesPlain(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Devices(&buf, FormatPlain, sampleDevices()))
	assert.Equal(t, "emulator-5554\tdevice\tsdk_gphone64_x86_64\tbrave-lynx\n", buf.String())
}

func TestDevicesTableContainsFields(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Devices(&buf, FormatTable, sampleDevices()))
	out := buf.String()
	assert.Contains(t, out, "emulator-5554")
	assert.Contains(t, out, "brave-lynx")
	assert.Contains(t, out, "2cf24dba5fb0")
}

func TestPropertiesPlainSorted(t *testing.T) {
	var buf bytes.Buffer
	err := Properties(&buf, FormatPlain, map[string]string{
		"ro.product.model": "Pixel_6",
		"ro.product.brand": "google",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ro.product.brand: google\nro.product.model: Pixel_6\n", buf.String())
}

func TestErrorJsonStructure(t *testing.T) {
	var buf bytes.Buffer
	err := &errors.Err{
		Code:    errors.AmbiguousDevice,
		Message: "multiple devices match 'abc'",
		Details: []string{"abc12345", "abc67890"},
	}
	Error(&buf, FormatJson, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "AmbiguousDevice", decoded["kind"])
	assert.Len(t, decoded["candidates"], 2)
}

func TestErrorTextListsCandidates(t *testing.T) {
	var buf bytes.Buffer
	err := &errors.Err{
		Code:    errors.DeviceIdRequired,
		Message: "multiple devices connected, specify one",
		Details: []string{"abc", "def"},
	}
	Error(&buf, FormatTable, err)

	out := buf.String()
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "def")
	assert.Contains(t, out, "specify a device")
}
