package adb

import (
	"sort"
	"sync"

	"github.com/kvnxiao/aim/internal/hash"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Properties fetched for every listed device. The avd name feeds the stable
// identity for emulators, whose connection serial changes across restarts.
var identityProps = []string{
	"ro.product.product.brand",
	"ro.product.model",
	"ro.boot.qemu.avd_name",
	"service.adb.root",
}

/*
DeviceDetails is a DeviceInfo augmented with fetched properties and the
stable identity.

The identity digest is a SHA-256 over the emulator's avd name when one is
present and non-empty, else over the serial; the short id is its first 12
hex characters and the pet-name is derived from the same seed. The same
physical device therefore keeps its identity across runs even when the
transient serial changes.
*/
type DeviceDetails struct {
	DeviceInfo

	Brand   string
	AvdName string

	// DeviceId is the stable identity digest; ShortId its 12-char form.
	DeviceId string
	ShortId  string

	// Name is the config alias when one is set, else the generated
	// pet-name.
	Name string

	// Props holds the raw fetched properties.
	Props map[string]string
}

/*
GetProps fetches the named properties from the device concurrently, one
connection per property. Single-property getprop is cheap on the device, so
wall time is dominated by round trips and the fan-out wins for small N.

The returned map is keyed by the input names minus any that individually
failed; a failed fetch never blocks the others.
*/
func (c *Adb) GetProps(descriptor DeviceDescriptor, names []string) map[string]string {
	var (
		mu    sync.Mutex
		props = make(map[string]string, len(names))
	)

	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			value, err := c.Device(descriptor).GetProp(name)
			if err != nil {
				log.Debugf("getprop %s failed: %v", name, err)
				return nil
			}
			mu.Lock()
			props[name] = value
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return props
}

// ListDeviceDetails enumerates devices and enriches each with the identity
// properties, fanning out across devices as well as across properties.
// Results are sorted by serial for deterministic output.
func (c *Adb) ListDeviceDetails() ([]*DeviceDetails, error) {
	infos, err := c.ListDevices()
	if err != nil {
		return nil, err
	}

	details := make([]*DeviceDetails, len(infos))
	var g errgroup.Group
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			details[i] = c.describeDevice(info)
			return nil
		})
	}
	g.Wait()

	sort.Slice(details, func(i, j int) bool {
		return details[i].Serial < details[j].Serial
	})
	return details, nil
}

// identitySeed picks what the stable identity hashes over: the avd name
// when present and non-empty, else the serial.
func identitySeed(serial string, props map[string]string) string {
	if avd := props["ro.boot.qemu.avd_name"]; avd != "" {
		return avd
	}
	return serial
}

func (c *Adb) describeDevice(info *DeviceInfo) *DeviceDetails {
	props := c.GetProps(DeviceWithSerial(info.Serial), identityProps)
	seed := identitySeed(info.Serial, props)

	return &DeviceDetails{
		DeviceInfo: *info,
		Brand:      props["ro.product.product.brand"],
		AvdName:    props["ro.boot.qemu.avd_name"],
		DeviceId:   hash.Sha256(seed),
		ShortId:    hash.Sha256Short(seed),
		Name:       hash.Petname(seed),
		Props:      props,
	}
}
