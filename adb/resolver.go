package adb

import (
	"strings"

	"github.com/kvnxiao/aim/internal/errors"
)

/*
ResolveDevice picks exactly one device for a user-supplied token, which may
be a configured alias, a full or partial serial, a short identity, or a
pet-name.

The match order is load-bearing:

 1. an alias (case-insensitive) is first replaced by its target key;
 2. a device matches on full serial, short id, pet-name, or a
    case-insensitive serial prefix, in that order;
 3. with several matches, a single exact serial match wins over prefixes;
    otherwise the ambiguity is an error listing the candidates.

Without a token: one connected device is returned, zero is NoDevices, and
more than one demands a token (DeviceIdRequired).
*/
func ResolveDevice(devices []*DeviceDetails, token string, aliases map[string]string) (*DeviceDetails, error) {
	if token == "" {
		switch len(devices) {
		case 0:
			return nil, errors.Errorf(errors.NoDevices, "no devices found")
		case 1:
			return devices[0], nil
		default:
			return nil, &errors.Err{
				Code:    errors.DeviceIdRequired,
				Message: "multiple devices connected, specify one",
				Details: serialsOf(devices),
			}
		}
	}

	for alias, target := range aliases {
		if strings.EqualFold(alias, token) {
			token = target
			break
		}
	}

	var matches []*DeviceDetails
	for _, d := range devices {
		if deviceMatches(d, token) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.Errorf(errors.DeviceNotFound, "device not found: %s", token)
	case 1:
		return matches[0], nil
	}

	// Exact beats prefix: two serials sharing a prefix must not shadow the
	// device whose full serial was typed.
	var exact *DeviceDetails
	for _, d := range matches {
		if d.Serial == token {
			if exact != nil {
				exact = nil
				break
			}
			exact = d
		}
	}
	if exact != nil {
		return exact, nil
	}

	return nil, &errors.Err{
		Code:    errors.AmbiguousDevice,
		Message: "multiple devices match '" + token + "'",
		Details: serialsOf(matches),
	}
}

func deviceMatches(d *DeviceDetails, token string) bool {
	switch {
	case d.Serial == token:
		return true
	case d.ShortId == token:
		return true
	case d.Name == token:
		return true
	}
	return strings.HasPrefix(strings.ToLower(d.Serial), strings.ToLower(token))
}

func serialsOf(devices []*DeviceDetails) []string {
	serials := make([]string, len(devices))
	for i, d := range devices {
		serials[i] = d.Serial
	}
	return serials
}
