package adb

import (
	"testing"

	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
	"github.com/kvnxiao/aim/internal/hash"
	"github.com/stretchr/testify/assert"
)

func TestGetPropsKeySetMatchesInput(t *testing.T) {
	s := &MockServer{Status: wire.StatusSuccess}
	client := &Adb{s}

	names := []string{"ro.product.model", "ro.product.brand", "ro.build.version.sdk"}
	props := client.GetProps(DeviceWithSerial("abc"), names)

	assert.Len(t, props, len(names))
	for _, name := range names {
		_, ok := props[name]
		assert.True(t, ok, name)
	}
}

func TestGetPropsDropsFailedKeys(t *testing.T) {
	// The very first dial fails; that property is missing from the result,
	// the others are unaffected.
	s := &MockServer{
		Status: wire.StatusSuccess,
		Errs:   []error{errors.Errorf(errors.NetworkError, "dial refused")},
	}
	client := &Adb{s}

	props := client.GetProps(DeviceWithSerial("abc"), []string{"a", "b"})
	assert.Len(t, props, 1)
}

func TestDescribeDeviceIdentityFromSerial(t *testing.T) {
	s := &MockServer{Status: wire.StatusSuccess}
	client := &Adb{s}

	d := client.describeDevice(&DeviceInfo{Serial: "05856558", State: StateDevice})

	assert.Equal(t, hash.Sha256("05856558"), d.DeviceId)
	assert.Equal(t, hash.Sha256Short("05856558"), d.ShortId)
	assert.Equal(t, hash.Petname("05856558"), d.Name)
	assert.Len(t, d.ShortId, 12)
}

func TestStableIdentityPrefersAvdName(t *testing.T) {
	// With a non-empty avd name the identity ignores the transient serial.
	props := map[string]string{"ro.boot.qemu.avd_name": "Pixel_6_API_34"}
	seedA := identitySeed("emulator-5554", props)
	seedB := identitySeed("emulator-5558", props)
	assert.Equal(t, seedA, seedB)

	// An empty avd name falls back to the serial.
	assert.Equal(t, "emulator-5554",
		identitySeed("emulator-5554", map[string]string{"ro.boot.qemu.avd_name": ""}))
}
