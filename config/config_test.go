package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvnxiao/aim/internal/errors"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
[alias]
lsbig = "ls -la"

[device.2cf24dba5fb0]
name = "office-pixel"

[screenshot]
output = "~/Pictures/screenshots"

[screenrecord]
output = "~/Videos"
`)

	cfg, err := loadFrom(path)
	assert.NoError(t, err)
	assert.Equal(t, "ls -la", cfg.Alias["lsbig"])
	assert.Equal(t, "office-pixel", cfg.Device["2cf24dba5fb0"].Name)
	assert.Equal(t, "~/Pictures/screenshots", cfg.Screenshot.Output)
	assert.Equal(t, "~/Videos", cfg.Screenrecord.Output)
}

func TestLoadFromIgnoresUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
some_future_key = true

[alias]
l = "ls"
`)

	cfg, err := loadFrom(path)
	assert.NoError(t, err)
	assert.Equal(t, "ls", cfg.Alias["l"])
}

func TestLoadFromMalformed(t *testing.T) {
	path := writeConfig(t, "[alias\nbroken")

	_, err := loadFrom(path)
	assert.True(t, errors.HasErrCode(err, errors.ConfigError))
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := loadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
	assert.False(t, errors.HasErrCode(err, errors.ConfigError))
}

func TestResolveAlias(t *testing.T) {
	cfg := &Config{Alias: map[string]string{"lsbig": "ls -la"}}
	assert.Equal(t, "ls -la", cfg.ResolveAlias("lsbig"))
	assert.Equal(t, "whoami", cfg.ResolveAlias("whoami"))

	// Alias resolution is a fixed point: resolving the expansion again
	// changes nothing.
	assert.Equal(t, "ls -la", cfg.ResolveAlias(cfg.ResolveAlias("lsbig")))
}

func TestDeviceNamePrefixMatch(t *testing.T) {
	cfg := &Config{Device: map[string]DeviceConfig{
		"2cf24dba5fb0": {Name: "office-pixel"},
	}}

	// The section key may be a truncation of the full identity.
	assert.Equal(t, "office-pixel",
		cfg.DeviceName("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"))
	// Or the lookup may be shorter than the key.
	assert.Equal(t, "office-pixel", cfg.DeviceName("2cf24dba"))
	assert.Equal(t, "", cfg.DeviceName("b94d27b9934d"))
}

func TestDeviceNameAmbiguousSections(t *testing.T) {
	cfg := &Config{Device: map[string]DeviceConfig{
		"2cf24dba": {Name: "one"},
		"2cf24dbb": {Name: "two"},
	}}

	// "2cf2" prefixes both sections; neither name wins.
	assert.Equal(t, "", cfg.DeviceName("2cf2"))
}

func TestDeviceAliases(t *testing.T) {
	cfg := &Config{Device: map[string]DeviceConfig{
		"2cf24dba5fb0": {Name: "office-pixel"},
		"b94d27b9934d": {},
	}}

	aliases := cfg.DeviceAliases()
	assert.Equal(t, map[string]string{"office-pixel": "2cf24dba5fb0"}, aliases)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "Pictures"), ExpandTilde("~/Pictures"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/tmp/x", ExpandTilde("/tmp/x"))
	assert.Equal(t, "x~y", ExpandTilde("x~y"))
}
