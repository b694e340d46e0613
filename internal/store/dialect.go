package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// dialect holds the driver-specific SQL and connection string handling.
// Queries are written with ? placeholders and rebound per dialect.
type dialect struct {
	driverName  string
	createTable string
	nameMatch   string
	numbered    bool
	dsn         func(types.Config) (string, error)
}

var dialects = map[string]*dialect{
	types.DriverSQLite: {
		driverName:  "sqlite",
		createTable: createContactsSQLite,
		nameMatch:   foldFunc + `(name) LIKE ` + foldFunc + `(?) ESCAPE '\'`,
		dsn:         sqliteDSN,
	},
	types.DriverPostgres: {
		driverName:  "pgx",
		createTable: createContactsPostgres,
		nameMatch:   `name ILIKE ? ESCAPE '\'`,
		numbered:    true,
		dsn:         postgresDSN,
	},
}

func dialectFor(driver string) (*dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrDriverUnknown, driver)
	}
	return d, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for numbered dialects.
func (d *dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Default SQLite settings.
const (
	defaultSQLiteFile  = "phonebook.db"
	defaultBusyTimeout = "5000"
)

// sqliteDSN uses the database (or dbname) parameter as the file path.
func sqliteDSN(cfg types.Config) (string, error) {
	path := cfg.Param("database", cfg.Param("dbname", defaultSQLiteFile))
	timeout := cfg.Param("busy_timeout", defaultBusyTimeout)
	if _, err := strconv.Atoi(timeout); err != nil {
		return "", fmt.Errorf("busy_timeout %q: %w", timeout, err)
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%s)", path, timeout), nil
}

// postgresKeyAliases maps settings-file keys onto libpq keywords.
var postgresKeyAliases = map[string]string{
	"database": "dbname",
}

// postgresDSN renders the parameters as a libpq keyword/value string.
// Keys are sorted so the result is stable.
func postgresDSN(cfg types.Config) (string, error) {
	params := make(map[string]string, len(cfg.Params))
	for k, v := range cfg.Params {
		if alias, ok := postgresKeyAliases[k]; ok {
			k = alias
		}
		params[k] = v
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.ContainsAny(k, " ='\\") || k == "" {
			return "", fmt.Errorf("invalid parameter name %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteDSNValue(params[k]))
	}
	return strings.Join(parts, " "), nil
}

// quoteDSNValue single-quotes v when it is empty or holds spaces, quotes
// or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// escapeLike escapes LIKE wildcards so substr matches literally.
func escapeLike(substr string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(substr)
}
