package ui

import (
	"os"
)

// boolToString converts a boolean to its string representation
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// stringToBool converts a string to boolean ("true" -> true, anything else -> false)
func stringToBool(s string) bool {
	return s == "true"
}

// fileExists checks if a file exists at the given path
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
