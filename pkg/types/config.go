package types

import "errors"

// Config selects the database driver and carries its connection parameters
// as read from the settings file.
type Config struct {
	Driver string            `json:"driver" yaml:"driver"`
	Params map[string]string `json:"params" yaml:"params"`
}

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config validation errors.
var (
	ErrDriverEmpty   = errors.New("driver must not be empty")
	ErrDriverUnknown = errors.New("unknown driver")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverPostgres: true,
	DriverSQLite:   true,
}

// Validate checks that the Config names a supported driver. Connection
// parameters are not inspected; bad values surface when connecting.
func (c Config) Validate() error {
	if c.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	return nil
}

// Param returns the named connection parameter, or def when it is unset
// or empty.
func (c Config) Param(name, def string) string {
	if v, ok := c.Params[name]; ok && v != "" {
		return v
	}
	return def
}
