// Package config loads the user's TOML configuration: shell aliases,
// device display names, and default output directories.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kvnxiao/aim/internal/errors"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// FileName is the config file under the user config directory.
const FileName = "config.toml"

// legacyFileName is the dotfile in the home directory, checked when the
// config directory has no file.
const legacyFileName = ".aimconfig"

/*
Config mirrors the recognized keys of the file:

	[alias]
	lsbig = "ls -la"

	[device.2cf24dba5fb0]
	name = "office-pixel"

	[screenshot]
	output = "~/Pictures/screenshots"

	[screenrecord]
	output = "~/Videos"

Unknown keys are ignored; a missing file yields the zero Config; a
malformed file logs a warning and yields defaults.
*/
type Config struct {
	Alias        map[string]string       `toml:"alias"`
	Device       map[string]DeviceConfig `toml:"device"`
	Screenshot   OutputConfig            `toml:"screenshot"`
	Screenrecord OutputConfig            `toml:"screenrecord"`
}

type DeviceConfig struct {
	Name string `toml:"name"`
}

type OutputConfig struct {
	Output string `toml:"output"`
}

// Path returns the preferred config file location.
func Path() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "aim", FileName)
	}
	return legacyPath()
}

func legacyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return legacyFileName
	}
	return filepath.Join(home, legacyFileName)
}

// Load reads the configuration, falling back to the legacy dotfile and then
// to defaults. Configuration problems are never fatal.
func Load() *Config {
	for _, path := range []string{Path(), legacyPath()} {
		cfg, err := loadFrom(path)
		if err == nil {
			return cfg
		}
		if errors.HasErrCode(err, errors.ConfigError) {
			log.Warnf("ignoring config %s: %v", path, err)
			break
		}
	}
	return &Config{}
}

func loadFrom(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		return nil, errors.WrapErrorf(err, errors.ConfigError, "malformed config")
	}
	return &cfg, nil
}

// ResolveAlias expands a command token through the alias table, or returns
// it unchanged.
func (c *Config) ResolveAlias(cmd string) string {
	if expansion, ok := c.Alias[cmd]; ok {
		return expansion
	}
	return cmd
}

/*
DeviceName returns the configured display name for a device identity.
Config sections may use a truncated identity as the key, so a section
matches when either string prefixes the other; several matching sections
are ambiguous and yield no name.
*/
func (c *Config) DeviceName(deviceId string) string {
	var (
		name    string
		matched []string
	)
	for key, dev := range c.Device {
		k, id := strings.ToLower(key), strings.ToLower(deviceId)
		if strings.HasPrefix(id, k) || strings.HasPrefix(k, id) {
			matched = append(matched, "device."+key)
			name = dev.Name
		}
	}
	if len(matched) > 1 {
		log.Warnf("multiple config sections match device %s: %s", deviceId, strings.Join(matched, ", "))
		return ""
	}
	return name
}

// DeviceAliases returns the alias → device-key map used by the resolver.
func (c *Config) DeviceAliases() map[string]string {
	aliases := make(map[string]string, len(c.Device))
	for key, dev := range c.Device {
		if dev.Name != "" {
			aliases[dev.Name] = key
		}
	}
	return aliases
}

// SetDeviceName persists a display name for a device identity, creating
// the config file if needed.
func SetDeviceName(deviceId, name string) error {
	path := Path()
	cfg, err := loadFrom(path)
	if err != nil {
		cfg = &Config{}
	}
	if cfg.Device == nil {
		cfg.Device = make(map[string]DeviceConfig)
	}
	cfg.Device[deviceId] = DeviceConfig{Name: name}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return errors.WrapErrorf(err, errors.ConfigError, "could not encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapErrorf(err, errors.ConfigError, "could not create config directory")
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WrapErrorf(err, errors.ConfigError, "could not write config")
	}
	return nil
}

// ExpandTilde resolves a leading ~/ against the home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
