package conformance

import (
	"syscall"

	"github.com/baaaaaaaka/envcompat/internal/envshim"
)

const (
	SetName    = "TESTENV"
	AbsentName = "TESTENV2"
	setValue   = "12"
)

func str(s string) *string { return &s }

func putenv(name, value *string) func(*envshim.Shim) Outcome {
	return func(s *envshim.Shim) Outcome {
		st := s.Putenv(name, value)
		return Outcome{Status: st, Errno: s.Errno()}
	}
}

// getenv calls Getenv on a fresh buffer filled with fill, or a nil buffer
// when fill is nil.
func getenv(fill []byte, size int, name *string) func(*envshim.Shim) Outcome {
	return func(s *envshim.Shim) Outcome {
		var buf []byte
		if fill != nil {
			buf = append([]byte(nil), fill...)
		}
		st := s.Getenv(buf, size, name)
		return Outcome{Status: st, Errno: s.Errno(), Buf: buf}
	}
}

// Cases returns the ordered check table. Later cases depend on the
// variable set by the third one.
func Cases() []Case {
	pattern := []byte{1, 2, 3}
	return []Case{
		{Name: "putenv nil name", Run: putenv(nil, str(setValue)), Want: syscall.EINVAL, WantErrno: syscall.EINVAL},
		{Name: "putenv nil value", Run: putenv(str(SetName), nil), Want: syscall.EINVAL, WantErrno: syscall.EINVAL},
		{Name: "putenv", Run: putenv(str(SetName), str(setValue))},
		{Name: "getenv nil name", Run: getenv(pattern, 3, nil), WantBuf: []byte{0}},
		{Name: "getenv absent", Run: getenv(pattern, 3, str(AbsentName)), WantBuf: []byte{0, 2, 3}},
		{Name: "getenv nil buffer", Run: getenv(nil, 3, str(SetName)), Want: syscall.EINVAL, WantErrno: syscall.EINVAL},
		{Name: "getenv nil buffer zero size", Run: getenv(nil, 0, str(SetName))},
		{Name: "getenv size 0", Run: getenv(pattern, 0, str(SetName)), Want: syscall.ERANGE, WantBuf: []byte{0, 2, 3}},
		{Name: "getenv size 1", Run: getenv(pattern, 1, str(SetName)), Want: syscall.ERANGE, WantBuf: []byte{0, 2, 3}},
		{Name: "getenv size 2", Run: getenv(pattern, 2, str(SetName)), Want: syscall.ERANGE, WantBuf: []byte{0, 2, 3}},
		{Name: "getenv exact", Run: getenv(pattern, 3, str(SetName)), WantBuf: []byte{'1', '2', 0}},
	}
}
