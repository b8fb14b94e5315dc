package adb

import (
	"bufio"
	"io"
	"strings"

	"github.com/kvnxiao/aim/internal/errors"
)

func containsWhitespace(str string) bool {
	return strings.ContainsAny(str, " \t\v")
}

func isBlank(str string) bool {
	return strings.TrimSpace(str) == ""
}

// scanLines feeds each line of r to callback until EOF.
func scanLines(r io.Reader, callback func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		callback(scanner.Text())
	}
	return errors.WrapErrorf(scanner.Err(), errors.NetworkError, "error reading stream")
}
