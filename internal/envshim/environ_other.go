//go:build !unix

package envshim

import "os"

// ProcessEnviron is the real process environment.
type ProcessEnviron struct{}

func (ProcessEnviron) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (ProcessEnviron) Set(name, value string) error {
	if err := validName(name); err != nil {
		return err
	}
	return os.Setenv(name, value)
}

// Unset removes name from the process environment.
func (ProcessEnviron) Unset(name string) error {
	return os.Unsetenv(name)
}
