package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	VerboseEnv = "ENVCOMPAT_VERBOSE"
	LogPathEnv = "ENVCOMPAT_LOG"

	defaultLogName = "envcompat-argfile.log"
)

// Settings is the harness configuration. It is read from the environment only,
// since the command line may be fuzzer-controlled.
type Settings struct {
	// Verbose enables diagnostic tracing. Any value, including the empty
	// string, turns it on.
	Verbose bool
	// LogPath is the append-mode trace log written in argument-file mode.
	LogPath string
}

func FromEnv() Settings {
	_, verbose := os.LookupEnv(VerboseEnv)
	return Settings{
		Verbose: verbose,
		LogPath: logPath(os.Getenv(LogPathEnv)),
	}
}

func logPath(override string) string {
	override = strings.TrimSpace(override)
	if override != "" {
		return override
	}
	return filepath.Join(os.TempDir(), defaultLogName)
}
