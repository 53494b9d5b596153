// Package envshim provides the PUTENV_S/GETENV_S style accessors used by the
// codec's portability layer. Nil pointers stand in for C NULL arguments and each
// Shim carries its own errno cell.
package envshim

import (
	"errors"
	"syscall"
)

// Environ is the environment table the shim reads and writes.
type Environ interface {
	Lookup(name string) (string, bool)
	Set(name, value string) error
}

// Shim is one accessor pair with its own errno cell. It is not safe for
// concurrent use.
type Shim struct {
	env   Environ
	errno syscall.Errno
}

// New returns a Shim over env. A nil env means the process environment.
func New(env Environ) *Shim {
	if env == nil {
		env = ProcessEnviron{}
	}
	return &Shim{env: env}
}

// Errno returns the errno cell. Putenv clears it on success; Getenv never does.
func (s *Shim) Errno() syscall.Errno { return s.errno }

func (s *Shim) SetErrno(e syscall.Errno) { s.errno = e }

// Putenv sets name to value, overwriting any existing value.
func (s *Shim) Putenv(name, value *string) syscall.Errno {
	if name == nil || value == nil {
		s.errno = syscall.EINVAL
		return s.errno
	}
	if err := s.env.Set(*name, *value); err != nil {
		var errno syscall.Errno
		if !errors.As(err, &errno) {
			errno = syscall.EINVAL
		}
		s.errno = errno
		return errno
	}
	s.errno = 0
	return 0
}

// Getenv copies the value of name into the first size bytes of dst and
// terminates it with a zero byte. Bytes after the terminator are left as they
// were. An unset variable or nil name yields an
// empty string. If the value does not fit, dst[0] is zeroed and ERANGE is
// returned without touching errno.
func (s *Shim) Getenv(dst []byte, size int, name *string) syscall.Errno {
	if dst == nil {
		if size == 0 {
			return 0
		}
		s.errno = syscall.EINVAL
		return s.errno
	}
	if size < 0 || size > len(dst) {
		s.errno = syscall.EINVAL
		return s.errno
	}

	var value string
	if name != nil {
		value, _ = s.env.Lookup(*name)
	}

	if len(value)+1 > size {
		if len(dst) > 0 {
			dst[0] = 0
		}
		return syscall.ERANGE
	}
	copy(dst, value)
	dst[len(value)] = 0
	return 0
}

// MapEnviron is an in-memory Environ.
type MapEnviron map[string]string

func (m MapEnviron) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m MapEnviron) Set(name, value string) error {
	if err := validName(name); err != nil {
		return err
	}
	m[name] = value
	return nil
}

func validName(name string) error {
	if name == "" {
		return syscall.EINVAL
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '=' || name[i] == 0 {
			return syscall.EINVAL
		}
	}
	return nil
}
