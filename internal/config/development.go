package config

import "os"

// Development is read before anything else so the logger can be chosen.
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0" && development != ""
}
