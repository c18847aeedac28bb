package config

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/boardkit/flashctl/internal/profile"
	"github.com/spf13/viper"
)

// Settings is the resolved, read-only configuration for one invocation.
// It is built once at startup and handed to the dispatcher by value.
type Settings struct {
	Platform      string
	Target        string
	ProgPort      string
	CommPort      string
	Baud          int
	BuildDir      string
	FirmwareBase  string
	OpenOCDConfig string
	Delegate      string
}

// Resolve reads every key from v and fills in the derived defaults.
// build_dir defaults to build/<platform>_<target> and firmware_base to
// <build_dir>/software/firmware/firmware.
func Resolve(v *viper.Viper) (Settings, error) {
	baud, err := parseBaud(v.Get(KeyBaud))
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Platform:      v.GetString(KeyPlatform),
		Target:        v.GetString(KeyTarget),
		ProgPort:      v.GetString(KeyProgPort),
		CommPort:      v.GetString(KeyCommPort),
		Baud:          baud,
		BuildDir:      v.GetString(KeyBuildDir),
		FirmwareBase:  v.GetString(KeyFirmwareBase),
		OpenOCDConfig: v.GetString(KeyOpenOCDConfig),
		Delegate:      v.GetString(KeyDelegate),
	}
	if s.Target == "" {
		s.Target = DefaultTarget
	}
	if s.Delegate == "" {
		return Settings{}, fmt.Errorf("%s must not be empty", KeyDelegate)
	}
	if s.BuildDir == "" {
		s.BuildDir = filepath.Join("build", s.Platform+"_"+s.Target)
	}
	if s.FirmwareBase == "" {
		s.FirmwareBase = filepath.Join(s.BuildDir, "software", "firmware", "firmware")
	}
	return s, nil
}

// WithProfileDefaults returns s with unset values taken from p.
func (s Settings) WithProfileDefaults(p *profile.Profile) Settings {
	if s.OpenOCDConfig == "" {
		s.OpenOCDConfig = p.OpenOCD.Config
	}
	return s
}

// Bitstream returns the path of the compiled gateware for the bound platform.
func (s Settings) Bitstream() string {
	return filepath.Join(s.BuildDir, "gateware", s.Platform+".bit")
}

// FirmwareImage returns the path of the firmware binary sent over serial.
func (s Settings) FirmwareImage() string {
	return s.FirmwareBase + ".bin"
}

// Vars returns the settings as build variables, in the form passed to
// forwarded build targets.
func (s Settings) Vars() []string {
	return []string{
		"PLATFORM=" + s.Platform,
		"TARGET=" + s.Target,
		"PROG_PORT=" + s.ProgPort,
		"COMM_PORT=" + s.CommPort,
		"BAUD=" + strconv.Itoa(s.Baud),
	}
}
