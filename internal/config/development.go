package config

import (
	"os"
	"strconv"
)

// Development reports whether DEVELOPMENT is switched on. Boolean spellings
// are honored; any other non-empty value counts as on.
func Development() bool {
	v := os.Getenv("DEVELOPMENT")
	if on, err := strconv.ParseBool(v); err == nil {
		return on
	}
	return v != ""
}
