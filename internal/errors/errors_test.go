package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorfCarriesCodeAndMessage(t *testing.T) {
	err := Errorf(DeviceNotFound, "device not found: %s", "abc")
	assert.Equal(t, "DeviceNotFound: device not found: abc", err.Error())
	assert.True(t, HasErrCode(err, DeviceNotFound))
	assert.False(t, HasErrCode(err, NoDevices))
}

func TestWrapErrorfNilCause(t *testing.T) {
	assert.NoError(t, WrapErrorf(nil, NetworkError, "whatever"))
}

func TestWrapErrfPreservesCode(t *testing.T) {
	inner := Errorf(TimeoutError, "deadline exceeded")
	outer := WrapErrf(inner, "while reading status")

	assert.True(t, HasErrCode(outer, TimeoutError))
	assert.Equal(t, inner, outer.(*Err).Cause)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, AssertionError, CodeOf(io.EOF))
}

func TestDetailsOfWalksCauseChain(t *testing.T) {
	inner := &Err{
		Code:    AmbiguousDevice,
		Message: "multiple devices match",
		Details: []string{"abc12345", "abc67890"},
	}
	outer := WrapErrf(inner, "while resolving")

	assert.Equal(t, []string{"abc12345", "abc67890"}, DetailsOf(outer))
	assert.Nil(t, DetailsOf(io.EOF))
}

func TestWrapEof(t *testing.T) {
	assert.True(t, HasErrCode(WrapEof(io.EOF, "read"), NetworkError))
	assert.True(t, HasErrCode(WrapEof(io.ErrUnexpectedEOF, "read"), NetworkError))

	other := Errorf(AdbError, "fail")
	assert.Equal(t, other, WrapEof(other, "read"))
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "TimeoutError", TimeoutError.String())
	assert.Equal(t, "ServerSpawnError", ServerSpawnError.String())
	assert.Equal(t, "ErrCode(200)", ErrCode(200).String())
}
