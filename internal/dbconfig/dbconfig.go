// Package dbconfig reads database connection parameters from a section of
// an INI settings file.
package dbconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Defaults for the settings file name and section.
const (
	DefaultFile    = "database.ini"
	DefaultSection = "postgresql"
)

// keyDriver selects the database driver. It is consumed by ToConfig and not
// passed to the driver as a connection parameter.
const keyDriver = "driver"

// defaultDriver applies when the section has no driver key.
const defaultDriver = types.DriverPostgres

// ErrSectionNotFound is returned when the settings file lacks the section.
var ErrSectionNotFound = errors.New("section not found")

// Load reads path and returns every key/value pair in section. Keys are
// lower-cased. Values are returned as written; nothing checks that they
// make a usable connection.
func Load(path, section string) (map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sec, err := f.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("section %q in %q: %w", section, path, ErrSectionNotFound)
	}

	return sec.KeysHash(), nil
}

// ToConfig splits the driver key out of params and returns the rest as the
// connection parameters of a types.Config.
func ToConfig(params map[string]string) types.Config {
	cfg := types.Config{
		Driver: defaultDriver,
		Params: make(map[string]string, len(params)),
	}
	for k, v := range params {
		if k == keyDriver {
			if v != "" {
				cfg.Driver = v
			}
			continue
		}
		cfg.Params[k] = v
	}
	return cfg
}

// LoadConfig is Load followed by ToConfig.
func LoadConfig(path, section string) (types.Config, error) {
	params, err := Load(path, section)
	if err != nil {
		return types.Config{}, err
	}
	return ToConfig(params), nil
}

// WriteTemplate creates a starter settings file at path with a section
// that points at a local SQLite database. It refuses to overwrite an
// existing file and returns os.ErrExist in that case.
func WriteTemplate(path, section string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file %s: %w", path, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat settings file: %w", err)
	}

	f := ini.Empty()
	sec, err := f.NewSection(section)
	if err != nil {
		return fmt.Errorf("creating section %q: %w", section, err)
	}
	sec.Comment = "Connection parameters for the phonebook store.\n" +
		"Set driver = postgres and add host, port, database, user and password\n" +
		"to use a PostgreSQL server instead."

	for _, kv := range [][2]string{
		{keyDriver, types.DriverSQLite},
		{"database", "phonebook.db"},
	} {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("writing key %s: %w", kv[0], err)
		}
	}

	return f.SaveTo(path)
}
