package schema

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// CapFirst upper-cases the first character of an identifier.
func CapFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UncapFirst lower-cases the first character of an identifier.
func UncapFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// DBName derives the storage name for a lower-camel identifier:
// "creationDate" becomes "CREATION_DATE". The same rule applies to
// class names when deriving table names.
func DBName(name string) string {
	return strings.ToUpper(inflect.Underscore(name))
}
