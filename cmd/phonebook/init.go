// Init command: writes config.yaml and a settings file template, then
// creates the contacts table.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/phonebook/internal/dbconfig"
	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	SettingsFile string `yaml:"settings_file,omitempty"`
	Section      string `yaml:"section"`
	Debug        bool   `yaml:"debug"`
}

func newInitCmd(v *viper.Viper, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create configuration, settings file and contacts table",
		Long: `Init creates the configuration directory with a config.yaml, writes a
settings file that points at a local SQLite database when none exists, and
creates the contacts table. Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, v, *flags)
		},
	}
}

func runInit(cmd *cobra.Command, v *viper.Viper, flags rootFlags) error {
	out := cmd.OutOrStdout()

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return startupError("resolve config dir", err)
	}
	if err := loadConfig(v, configDir); err != nil {
		return startupError("load config", err)
	}

	settingsPath, err := paths.ResolveSettingsFile(flags.settings, v.GetString(cfgKeySettingsFile))
	if err != nil {
		return startupError("resolve settings file", err)
	}
	section := v.GetString(cfgKeySection)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return startupError("create config directory", err)
	}

	configPath := filepath.Join(configDir, paths.ConfigFileName)
	wrote, err := writeConfigIfMissing(configPath, configFile{SettingsFile: settingsPath, Section: section})
	if err != nil {
		return startupError("write config", err)
	}
	if wrote {
		fmt.Fprintln(out, "Wrote", configPath)
	}

	if err := dbconfig.WriteTemplate(settingsPath, section); err == nil {
		fmt.Fprintln(out, "Wrote", settingsPath)
	} else if !errors.Is(err, os.ErrExist) {
		return startupError("write settings file", err)
	}

	cfg, err := dbconfig.LoadConfig(settingsPath, section)
	if err != nil {
		return startupError("load settings", err)
	}
	if cfg.Driver == types.DriverSQLite {
		resolveSQLitePath(&cfg, settingsPath)
	}

	backend := phonebook.NewStore(nil)
	if err := backend.Attach(cfg); err != nil {
		return startupError("initialize storage", err)
	}
	if err := backend.Detach(); err != nil {
		return startupError("finalize storage", err)
	}

	fmt.Fprintln(out, "Phonebook initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml unless it already exists.
// It reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	return true, os.WriteFile(path, data, 0o644)
}
