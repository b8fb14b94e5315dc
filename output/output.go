// Package output renders devices, properties and errors in the CLI's three
// formats: a human table, structured JSON, and bare plain text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/kvnxiao/aim/adb"
	"github.com/kvnxiao/aim/internal/errors"
	"github.com/olekukonko/tablewriter"
)

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJson  Format = "json"
	FormatPlain Format = "plain"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTable:
		return FormatTable, nil
	case FormatJson:
		return FormatJson, nil
	case FormatPlain:
		return FormatPlain, nil
	}
	return "", errors.Errorf(errors.ParseError, "unknown output format: %s", s)
}

var (
	stateGood = color.New(color.FgGreen)
	stateBad  = color.New(color.FgRed)
	stateWarn = color.New(color.FgYellow)
)

func colorState(state adb.DeviceState) string {
	s := string(state)
	switch state {
	case adb.StateDevice:
		return stateGood.Sprint(s)
	case adb.StateOffline:
		return stateBad.Sprint(s)
	default:
		return stateWarn.Sprint(s)
	}
}

// deviceJson is the stable JSON shape of a listed device.
type deviceJson struct {
	Serial      string `json:"serial"`
	State       string `json:"state"`
	Usb         string `json:"usb,omitempty"`
	Product     string `json:"product"`
	Model       string `json:"model"`
	Device      string `json:"device"`
	TransportId string `json:"transport_id"`
	Brand       string `json:"brand,omitempty"`
	DeviceId    string `json:"device_id"`
	ShortId     string `json:"device_id_short"`
	Name        string `json:"device_name"`
}

// Devices renders the device list in the requested format.
func Devices(w io.Writer, format Format, devices []*adb.DeviceDetails) error {
	switch format {
	case FormatJson:
		out := make([]deviceJson, len(devices))
		for i, d := range devices {
			out[i] = deviceJson{
				Serial:      d.Serial,
				State:       string(d.State),
				Usb:         d.Usb,
				Product:     d.Product,
				Model:       d.Model,
				Device:      d.DeviceName,
				TransportId: d.TransportId,
				Brand:       d.Brand,
				DeviceId:    d.DeviceId,
				ShortId:     d.ShortId,
				Name:        d.Name,
			}
		}
		return writeJson(w, out)

	case FormatPlain:
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Serial, d.State, d.Model, d.Name)
		}
		return nil

	default:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Serial", "State", "Model", "Brand", "Id", "Name"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		for _, d := range devices {
			table.Append([]string{
				d.Serial,
				colorState(d.State),
				d.Model,
				d.Brand,
				d.ShortId,
				d.Name,
			})
		}
		table.Render()
		return nil
	}
}

// Properties renders a property map sorted by key.
func Properties(w io.Writer, format Format, props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch format {
	case FormatJson:
		return writeJson(w, props)

	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Property", "Value"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		for _, k := range keys {
			table.Append([]string{k, props[k]})
		}
		table.Render()
		return nil

	default:
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, props[k])
		}
		return nil
	}
}

// errorJson is the structured error object written in JSON mode.
type errorJson struct {
	Error      string   `json:"error"`
	Kind       string   `json:"kind"`
	Candidates []string `json:"candidates,omitempty"`
}

// Error renders err. In JSON mode a structured object replaces the one-line
// message; resolver errors include their candidate lists either way.
func Error(w io.Writer, format Format, err error) {
	candidates, _ := errors.DetailsOf(err).([]string)

	if format == FormatJson {
		writeJson(w, errorJson{
			Error:      err.Error(),
			Kind:       errors.CodeOf(err).String(),
			Candidates: candidates,
		})
		return
	}

	fmt.Fprintln(w, stateBad.Sprint("error:"), userMessage(err))
	for _, c := range candidates {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

// userMessage maps an error kind to its canonical one-line message.
func userMessage(err error) string {
	switch errors.CodeOf(err) {
	case errors.NoDevices:
		return "no devices found. Is the device connected and authorized?"
	case errors.DeviceIdRequired:
		return "multiple devices connected, specify a device:"
	case errors.AmbiguousDevice:
		return err.(*errors.Err).Message + ", matching devices:"
	default:
		return err.Error()
	}
}

func writeJson(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
