package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sha256(""))
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Sha256("hello"))
	assert.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		Sha256("hello world"))
}

func TestSha256Short(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc", Sha256Short(""))
	assert.Equal(t, "2cf24dba5fb0", Sha256Short("hello"))
	assert.Equal(t, "b94d27b9934d", Sha256Short("hello world"))
	assert.Len(t, Sha256Short("very long string"), ShortLength)
}

func TestPetnameDeterministic(t *testing.T) {
	assert.Equal(t, Petname("test-input"), Petname("test-input"))
	assert.NotEqual(t, Petname("test-input"), Petname("different-input"))
}

func TestPetnameFormat(t *testing.T) {
	for _, input := range []string{"test", "", "emulator-5554", "Pixel_6"} {
		name := Petname(input)
		parts := strings.Split(name, "-")
		assert.Len(t, parts, 2, name)
		assert.NotEmpty(t, parts[0])
		assert.NotEmpty(t, parts[1])
		assert.NotContains(t, name, " ")
	}
}

func TestPetnameOfHashIsStable(t *testing.T) {
	seed := Sha256Short("test string")
	assert.Equal(t, Petname(seed), Petname(seed))
}
