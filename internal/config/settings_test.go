package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(VerboseEnv, "")
	_ = os.Unsetenv(VerboseEnv)
	t.Setenv(LogPathEnv, "")

	s := FromEnv()
	if s.Verbose {
		t.Fatalf("expected verbose off when %s is unset", VerboseEnv)
	}
	want := filepath.Join(os.TempDir(), defaultLogName)
	if s.LogPath != want {
		t.Fatalf("LogPath=%q want %q", s.LogPath, want)
	}
}

func TestFromEnvVerboseAnyValue(t *testing.T) {
	for _, v := range []string{"", "0", "1", "false"} {
		t.Setenv(VerboseEnv, v)
		if !FromEnv().Verbose {
			t.Fatalf("expected verbose on for %s=%q", VerboseEnv, v)
		}
	}
}

func TestFromEnvLogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	t.Setenv(LogPathEnv, "  "+path+" ")
	if got := FromEnv().LogPath; got != path {
		t.Fatalf("LogPath=%q want %q", got, path)
	}
}
