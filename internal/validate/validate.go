// Package validate holds the syntax checks applied to contact fields before
// they are written.
package validate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)

// Phone reports whether s is non-empty and made only of digits and hyphens.
func Phone(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// Email reports whether s has the shape local@domain, where both sides are
// one or more word, dot or hyphen characters. No domain suffix is required.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Name reports whether s has any non-space content.
func Name(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NormalizeName trims s and title-cases each word, so "jane  doe " becomes
// "Jane  Doe".
func NormalizeName(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
