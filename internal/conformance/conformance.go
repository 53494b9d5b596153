// Package conformance checks the envshim accessors against a fixed table of
// expected statuses, errno values and buffer contents.
package conformance

import (
	"context"
	"fmt"
	"io"
	"syscall"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/envcompat/internal/envshim"
)

// Outcome is what one check observed.
type Outcome struct {
	Status syscall.Errno
	Errno  syscall.Errno
	Buf    []byte
}

// Case is a single check. Buf is compared only when WantBuf is non-nil.
type Case struct {
	Name      string
	Run       func(s *envshim.Shim) Outcome
	Want      syscall.Errno
	WantErrno syscall.Errno
	WantBuf   []byte
}

// MismatchError reports the first failing check.
type MismatchError struct {
	Case  string
	Field string
	Got   int
	Want  int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("ERROR in %s: %s is %d, should be %d", e.Case, e.Field, e.Got, e.Want)
}

// Runner executes Cases against Shim, reporting the first mismatch to Out.
type Runner struct {
	Shim  *envshim.Shim
	Out   io.Writer
	Log   *zap.Logger
	Cases []Case
}

// NewRunner returns a runner over the default case table.
func NewRunner(shim *envshim.Shim, out io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Shim: shim, Out: out, Log: log, Cases: Cases()}
}

// Run executes the cases in order and stops at the first mismatch, which is
// printed to Out and returned as a *MismatchError.
func (r *Runner) Run(ctx context.Context) error {
	for i, c := range r.Cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Shim.SetErrno(0)
		got := c.Run(r.Shim)
		if err := check(c, got); err != nil {
			r.Log.Debug("check failed", zap.Int("index", i), zap.String("case", c.Name), zap.Error(err))
			_, _ = fmt.Fprintln(r.Out, err.Error())
			return err
		}
		r.Log.Debug("check passed", zap.Int("index", i), zap.String("case", c.Name))
	}
	return nil
}

func check(c Case, got Outcome) error {
	if got.Status != c.Want {
		return &MismatchError{Case: c.Name, Field: "return value", Got: int(got.Status), Want: int(c.Want)}
	}
	if got.Errno != c.WantErrno {
		return &MismatchError{Case: c.Name, Field: "errno", Got: int(got.Errno), Want: int(c.WantErrno)}
	}
	for i, want := range c.WantBuf {
		have := -1
		if i < len(got.Buf) {
			have = int(got.Buf[i])
		}
		if have != int(want) {
			return &MismatchError{Case: c.Name, Field: fmt.Sprintf("buf[%d]", i), Got: have, Want: int(want)}
		}
	}
	return nil
}
