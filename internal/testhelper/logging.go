// Package testhelper silences the global logger for package tests. Import it
// for side effects from a _test.go file.
package testhelper

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// LogEnv turns test logging back on when set to a zerolog level name.
const LogEnv = "GROWTHCAST_TEST_LOG"

func init() {
	if testing.Testing() {
		Configure()
	}
}

// Configure applies LogEnv to the global zerolog level.
func Configure() {
	value := os.Getenv(LogEnv)
	if value == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	level, err := zerolog.ParseLevel(value)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}
