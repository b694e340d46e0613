// Config loading for the phonebook CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "PHONEBOOK"

	// Config keys. section, debug and log_file are also flags and
	// PHONEBOOK_* environment variables.
	cfgKeySettingsFile = "settings_file"
	cfgKeySection      = "section"
	cfgKeyDebug        = "debug"
	cfgKeyLogFile      = "log_file"

	flagLogFile = "log-file"
)

// bindConfig wires flags and environment variables into v. Precedence is
// flag > env > config.yaml > flag default.
func bindConfig(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix(envPrefix)
	bound := map[string]string{
		cfgKeySection: cfgKeySection,
		cfgKeyDebug:   cfgKeyDebug,
		cfgKeyLogFile: flagLogFile,
	}
	for key, flag := range bound {
		_ = v.BindPFlag(key, flags.Lookup(flag))
		_ = v.BindEnv(key)
	}
}

// loadConfig reads config.yaml from configDir into v.
// A missing config.yaml is not an error.
func loadConfig(v *viper.Viper, configDir string) error {
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
