// Package errors defines the error taxonomy used throughout the client.
// Every error returned across a package boundary is an *Err carrying one of
// the ErrCode kinds below. The CLI maps each kind to a single user-facing
// message and exit code.
package errors

import (
	"fmt"
	"io"
)

type ErrCode uint8

const (
	// AssertionError indicates a bug in this library.
	AssertionError ErrCode = iota
	// ParseError indicates a response from the server could not be decoded.
	ParseError
	// NetworkError wraps connect/read/write failures on the server socket.
	NetworkError
	// TimeoutError is a read/write/probe deadline exceeded. Details holds
	// the elapsed seconds as float64.
	TimeoutError
	// ProtocolError is a wire-level violation: bad status tag, bad magic,
	// short read.
	ProtocolError
	// AdbError is a FAIL response from the adb server; Details carries the
	// server's text verbatim and Message adds the request it answered.
	AdbError
	// FileTransferError is a SYNC FAIL or local I/O failure mid-transfer.
	FileTransferError
	// NoDevices: the server reported an empty device list.
	NoDevices
	// DeviceNotFound: no connected device matched the requested token.
	DeviceNotFound
	// AmbiguousDevice: a token matched more than one device. Details holds
	// the candidate serials as []string.
	AmbiguousDevice
	// DeviceIdRequired: several devices are connected and no token was
	// given. Details holds the candidate serials as []string.
	DeviceIdRequired
	// ConfigError: the configuration file could not be parsed. Recoverable,
	// callers fall back to defaults.
	ConfigError
	// ServerSpawnError: the local adb binary could not be started.
	ServerSpawnError
	// InvalidCopy: a copy operation with an unusable source/destination
	// combination.
	InvalidCopy
)

func (c ErrCode) String() string {
	switch c {
	case AssertionError:
		return "AssertionError"
	case ParseError:
		return "ParseError"
	case NetworkError:
		return "NetworkError"
	case TimeoutError:
		return "TimeoutError"
	case ProtocolError:
		return "ProtocolError"
	case AdbError:
		return "AdbError"
	case FileTransferError:
		return "FileTransferError"
	case NoDevices:
		return "NoDevices"
	case DeviceNotFound:
		return "DeviceNotFound"
	case AmbiguousDevice:
		return "AmbiguousDevice"
	case DeviceIdRequired:
		return "DeviceIdRequired"
	case ConfigError:
		return "ConfigError"
	case ServerSpawnError:
		return "ServerSpawnError"
	case InvalidCopy:
		return "InvalidCopy"
	}
	return fmt.Sprintf("ErrCode(%d)", uint8(c))
}

/*
Err is the standard error type used by this library.

Details is optional structured context attached by the site that raised the
error: candidate serials for the resolver errors, elapsed seconds for
timeouts, the service name for wrapped call failures.
*/
type Err struct {
	Code    ErrCode
	Message string
	Details interface{}
	Cause   error
}

var _ error = &Err{}

func (err *Err) Error() string {
	return fmt.Sprintf("%s: %s", err.Code, err.Message)
}

func (err *Err) Unwrap() error {
	return err.Cause
}

func Errorf(code ErrCode, format string, args ...interface{}) error {
	return &Err{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapErrorf returns an *Err with the given code whose Cause is cause.
// A nil cause returns nil.
func WrapErrorf(cause error, code ErrCode, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &Err{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

/*
WrapErrf wraps an *Err in another *Err of the same code, adding context.
The cause must be nil or an *Err. Used by layers that never change the
kind of an error, only annotate it (spec'd propagation: the service layer
may add the service name as context, nothing more).
*/
func WrapErrf(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	err := cause.(*Err)
	return &Err{
		Code:    err.Code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

func AssertionErrorf(format string, args ...interface{}) error {
	return &Err{
		Code:    AssertionError,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasErrCode reports whether err is an *Err of the given code.
func HasErrCode(err error, code ErrCode) bool {
	if e, ok := err.(*Err); ok {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of err, or AssertionError for foreign errors.
func CodeOf(err error) ErrCode {
	if e, ok := err.(*Err); ok {
		return e.Code
	}
	return AssertionError
}

// DetailsOf returns the Details of the outermost *Err in err's chain that
// carries any, walking Cause links.
func DetailsOf(err error) interface{} {
	for err != nil {
		e, ok := err.(*Err)
		if !ok {
			return nil
		}
		if e.Details != nil {
			return e.Details
		}
		err = e.Cause
	}
	return nil
}

// WrapEof converts io.EOF and io.ErrUnexpectedEOF into NetworkError so
// callers never have to special-case the raw sentinels.
func WrapEof(err error, format string, args ...interface{}) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return WrapErrorf(err, NetworkError, format, args...)
	}
	return err
}
