package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/tessobs/internal/types"
)

// Config represents the tessobs configuration
type Config struct {
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Mission  MissionConfig  `yaml:"mission" mapstructure:"mission"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// ResolverConfig contains the name resolution service settings
type ResolverConfig struct {
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MissionConfig holds the TESS mission constants. Window bounds are RFC 3339
// instants so that extended mission years can be added without a rebuild.
type MissionConfig struct {
	HemisphereLatitudeDeg  float64 `yaml:"hemisphere_latitude_deg" mapstructure:"hemisphere_latitude_deg"`
	SouthStart             string  `yaml:"south_start" mapstructure:"south_start"`
	SouthEnd               string  `yaml:"south_end" mapstructure:"south_end"`
	NorthStart             string  `yaml:"north_start" mapstructure:"north_start"`
	NorthEnd               string  `yaml:"north_end" mapstructure:"north_end"`
	MissionStartJD         float64 `yaml:"mission_start_jd" mapstructure:"mission_start_jd"`
	PaddingDays            int     `yaml:"padding_days" mapstructure:"padding_days"`
	MultiSectorLatitudeDeg float64 `yaml:"multi_sector_latitude_deg" mapstructure:"multi_sector_latitude_deg"`
}

// OutputConfig contains console output settings
type OutputConfig struct {
	Color    bool   `yaml:"color" mapstructure:"color"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

const (
	DefaultResolverEndpoint = "https://simbad.cds.unistra.fr/simbad/sim-script"
	DefaultResolverTimeout  = 30 * time.Second

	DefaultHemisphereLatitudeDeg  = 5.5
	DefaultSouthStart             = "2018-06-18T00:00:00Z"
	DefaultSouthEnd               = "2019-06-18T00:00:00Z"
	DefaultNorthStart             = "2019-06-18T00:00:00Z"
	DefaultNorthEnd               = "2020-06-18T00:00:00Z"
	DefaultMissionStartJD         = 2458287.5
	DefaultPaddingDays            = 28
	DefaultMultiSectorLatitudeDeg = 30.0

	envPrefix = "TESSOBS"
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Endpoint: DefaultResolverEndpoint,
			Timeout:  DefaultResolverTimeout,
		},
		Mission: MissionConfig{
			HemisphereLatitudeDeg:  DefaultHemisphereLatitudeDeg,
			SouthStart:             DefaultSouthStart,
			SouthEnd:               DefaultSouthEnd,
			NorthStart:             DefaultNorthStart,
			NorthEnd:               DefaultNorthEnd,
			MissionStartJD:         DefaultMissionStartJD,
			PaddingDays:            DefaultPaddingDays,
			MultiSectorLatitudeDeg: DefaultMultiSectorLatitudeDeg,
		},
		Output: OutputConfig{
			Color:    true,
			LogLevel: "info",
		},
	}
}

// setDefaults registers DefaultConfig with viper so that partial config files
// and environment overrides are merged over it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("resolver.endpoint", d.Resolver.Endpoint)
	v.SetDefault("resolver.timeout", d.Resolver.Timeout)
	v.SetDefault("mission.hemisphere_latitude_deg", d.Mission.HemisphereLatitudeDeg)
	v.SetDefault("mission.south_start", d.Mission.SouthStart)
	v.SetDefault("mission.south_end", d.Mission.SouthEnd)
	v.SetDefault("mission.north_start", d.Mission.NorthStart)
	v.SetDefault("mission.north_end", d.Mission.NorthEnd)
	v.SetDefault("mission.mission_start_jd", d.Mission.MissionStartJD)
	v.SetDefault("mission.padding_days", d.Mission.PaddingDays)
	v.SetDefault("mission.multi_sector_latitude_deg", d.Mission.MultiSectorLatitudeDeg)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.log_level", d.Output.LogLevel)
}

// LoadConfig loads configuration from cfgFile, or from config.yaml in
// $HOME/.tessobs or the working directory when cfgFile is empty. A missing
// config file is not an error; defaults apply.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".tessobs"))
		}
		v.AddConfigPath(".")
	}

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Resolver.Endpoint == "" {
		return errorsmod.Wrap(types.ErrInvalidConfig, "resolver endpoint cannot be empty")
	}

	if config.Resolver.Timeout <= 0 {
		return errorsmod.Wrap(types.ErrInvalidConfig, "resolver timeout must be positive")
	}

	if config.Mission.HemisphereLatitudeDeg < 0 || config.Mission.HemisphereLatitudeDeg >= 90 {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "hemisphere latitude %v out of range [0, 90)", config.Mission.HemisphereLatitudeDeg)
	}

	if config.Mission.PaddingDays < 0 {
		return errorsmod.Wrap(types.ErrInvalidConfig, "padding days cannot be negative")
	}

	if _, _, err := config.Mission.SouthWindow(); err != nil {
		return err
	}
	if _, _, err := config.Mission.NorthWindow(); err != nil {
		return err
	}

	return nil
}

// SouthWindow returns the southern ecliptic observing year
func (m MissionConfig) SouthWindow() (start, end time.Time, err error) {
	return parseWindow("south", m.SouthStart, m.SouthEnd)
}

// NorthWindow returns the northern ecliptic observing year
func (m MissionConfig) NorthWindow() (start, end time.Time, err error) {
	return parseWindow("north", m.NorthStart, m.NorthEnd)
}

func parseWindow(name, from, to string) (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, from)
	if err != nil {
		return start, end, errorsmod.Wrapf(types.ErrInvalidConfig, "%s window start: %v", name, err)
	}
	end, err = time.Parse(time.RFC3339, to)
	if err != nil {
		return start, end, errorsmod.Wrapf(types.ErrInvalidConfig, "%s window end: %v", name, err)
	}
	if !end.After(start) {
		return start, end, errorsmod.Wrapf(types.ErrInvalidConfig, "%s window ends before it starts", name)
	}
	return start.UTC(), end.UTC(), nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// GetConfigPath returns the default path of the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".tessobs", "config.yaml"), nil
}
