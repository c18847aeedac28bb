package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/boardkit/flashctl/internal/branding"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys. Each key is also reachable as an environment variable
// with the branding prefix, e.g. FLASHCTL_COMM_PORT.
const (
	KeyPlatform      = "platform"
	KeyTarget        = "target"
	KeyProgPort      = "prog_port"
	KeyCommPort      = "comm_port"
	KeyBaud          = "baud"
	KeyBuildDir      = "build_dir"
	KeyFirmwareBase  = "firmware_base"
	KeyOpenOCDConfig = "openocd_config"
	KeyDelegate      = "delegate"
)

// Built-in defaults, applied only when a key is unset everywhere else.
const (
	DefaultTarget   = "base"
	DefaultProgPort = "/dev/ttyUSB0"
	DefaultCommPort = "/dev/ttyUSB1"
	DefaultBaud     = 115200
	DefaultDelegate = "make"
)

// Keys returns every configuration key in display order.
func Keys() []string {
	return []string{
		KeyPlatform, KeyTarget, KeyProgPort, KeyCommPort, KeyBaud,
		KeyBuildDir, KeyFirmwareBase, KeyOpenOCDConfig, KeyDelegate,
	}
}

// Dir returns the path to the config directory (~/.flashctl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.flashctl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTarget, DefaultTarget)
	v.SetDefault(KeyProgPort, DefaultProgPort)
	v.SetDefault(KeyCommPort, DefaultCommPort)
	v.SetDefault(KeyBaud, DefaultBaud)
	v.SetDefault(KeyDelegate, DefaultDelegate)
}

// Load points v at the config file and the environment and registers the
// built-in defaults. A missing config file is not an error.
func Load(v *viper.Viper) error {
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(v *viper.Viper, key string) (string, error) {
	if !isKnownKey(key) {
		return "", unknownKeyError(key)
	}
	return v.GetString(key), nil
}

// Set writes a config key-value pair and saves the config file.
func Set(v *viper.Viper, key, value string) error {
	if !isKnownKey(key) {
		return unknownKeyError(key)
	}
	if key == KeyBaud {
		if _, err := parseBaud(value); err != nil {
			return err
		}
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	// Write only what the file already held plus the new key, so defaults and
	// environment overrides do not leak into it.
	file := viper.New()
	file.SetConfigFile(FilePath())
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	v.Set(key, value)
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
}

func parseBaud(raw interface{}) (int, error) {
	baud, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %v: %w", KeyBaud, raw, err)
	}
	if baud <= 0 {
		return 0, fmt.Errorf("invalid %s %d: must be positive", KeyBaud, baud)
	}
	return baud, nil
}
