//go:build unix

package envshim

import "golang.org/x/sys/unix"

// ProcessEnviron is the real process environment.
type ProcessEnviron struct{}

func (ProcessEnviron) Lookup(name string) (string, bool) {
	return unix.Getenv(name)
}

func (ProcessEnviron) Set(name, value string) error {
	if err := validName(name); err != nil {
		return err
	}
	return unix.Setenv(name, value)
}

// Unset removes name from the process environment.
func (ProcessEnviron) Unset(name string) error {
	return unix.Unsetenv(name)
}
