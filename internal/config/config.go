// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/format"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for inflation-estimator.
type Configuration struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Rates   RatesConfig   `mapstructure:"rates" yaml:"rates,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
	Locale string `mapstructure:"locale" yaml:"locale,omitempty"` // es-AR, en-US
}

// RatesConfig optionally replaces the built-in monthly rate tiers.
type RatesConfig struct {
	DefaultRate *float64             `mapstructure:"defaultRate" yaml:"defaultRate,omitempty"`
	Tiers       []inflation.RateTier `mapstructure:"tiers" yaml:"tiers,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Known keys pick up INFLATION_* environment overrides even when the
	// file omits them.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.locale", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationIfExists behaves like LoadConfiguration but falls back to
// defaults plus environment overrides when configPath does not exist.
func LoadConfigurationIfExists(configPath string) (*Configuration, error) {
	if configPath == "" {
		return decode(newViper())
	}
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return decode(newViper())
		}
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return LoadConfiguration(configPath)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// RateTable returns the configured rate table, or the built-in one when
// neither tiers nor a default rate are configured.
func (c *Configuration) RateTable() (inflation.RateTable, error) {
	if len(c.Rates.Tiers) == 0 && c.Rates.DefaultRate == nil {
		return inflation.DefaultRateTable(), nil
	}

	defaultRate := inflation.DefaultMonthlyRate
	if c.Rates.DefaultRate != nil {
		defaultRate = *c.Rates.DefaultRate
	}

	table, err := inflation.NewRateTable(c.Rates.Tiers, defaultRate)
	if err != nil {
		return inflation.RateTable{}, fmt.Errorf("invalid rates configuration: %w", err)
	}
	return table, nil
}

// Locale returns the configured display locale, falling back to es-AR.
func (c *Configuration) Locale() format.Locale {
	return format.MustLocale(c.Output.Locale)
}

// Validate returns an error for configuration that cannot be used.
func (c *Configuration) Validate() error {
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if _, err := c.RateTable(); err != nil {
		return err
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Locale != "" {
		if err := validation.ValidateLocale(c.Output.Locale); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s; using %s", err, format.DefaultLocale()))
		}
	}

	if len(c.Rates.Tiers) > 0 && c.Rates.DefaultRate == nil {
		warnings = append(warnings, fmt.Sprintf("rates.defaultRate not set; using %v for years before the oldest tier",
			inflation.DefaultMonthlyRate))
	}

	for _, tier := range c.Rates.Tiers {
		if tier.MonthlyRate == 0 {
			warnings = append(warnings, fmt.Sprintf("rate tier %d has a monthly rate of zero", tier.MinYear))
		}
	}

	return warnings
}
