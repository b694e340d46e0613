package store

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// foldFunc is the SQLite scalar function that applies Unicode case folding.
// The built-in lower() and LIKE only fold ASCII letters.
const foldFunc = "casefold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, casefold); err != nil {
		panic(fmt.Sprintf("registering sqlite function %s: %v", foldFunc, err))
	}
}

// casefold returns its text argument case folded. NULL stays NULL and other
// types pass through unchanged.
func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return v, nil
	}
}
