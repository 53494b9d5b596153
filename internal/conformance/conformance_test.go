package conformance

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/baaaaaaaka/envcompat/internal/envshim"
)

func TestRunPassesOnMapEnviron(t *testing.T) {
	env := envshim.MapEnviron{}
	var out bytes.Buffer
	r := NewRunner(envshim.New(env), &out, nil)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on success, got %q", out.String())
	}
	if env[SetName] != setValue {
		t.Fatalf("%s=%q want %q", SetName, env[SetName], setValue)
	}
}

func TestRunPassesOnProcessEnviron(t *testing.T) {
	t.Setenv(SetName, "")
	t.Setenv(AbsentName, "")
	if err := (envshim.ProcessEnviron{}).Unset(AbsentName); err != nil {
		t.Fatalf("Unset: %v", err)
	}

	var out bytes.Buffer
	if err := NewRunner(envshim.New(nil), &out, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v (output %q)", err, out.String())
	}
}

func TestRunStopsAtFirstMismatch(t *testing.T) {
	env := envshim.MapEnviron{AbsentName: "oops"}
	var out bytes.Buffer
	r := NewRunner(envshim.New(env), &out, nil)

	calls := 0
	for i := range r.Cases {
		run := r.Cases[i].Run
		r.Cases[i].Run = func(s *envshim.Shim) Outcome {
			calls++
			return run(s)
		}
	}

	err := r.Run(context.Background())
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mm.Case != "getenv absent" {
		t.Fatalf("failing case=%q", mm.Case)
	}
	if calls != 5 {
		t.Fatalf("expected run to stop after 5 checks, got %d", calls)
	}
	if mm.Got != int(syscall.ERANGE) || mm.Want != 0 {
		t.Fatalf("got=%d want=%d", mm.Got, mm.Want)
	}
	if !strings.HasPrefix(out.String(), "ERROR in getenv absent: return value is ") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCheckReportsField(t *testing.T) {
	c := Case{Name: "c", WantErrno: syscall.EINVAL, WantBuf: []byte{0, 2}}

	err := check(c, Outcome{Errno: 0, Buf: []byte{0, 2}})
	var mm *MismatchError
	if !errors.As(err, &mm) || mm.Field != "errno" {
		t.Fatalf("expected errno mismatch, got %v", err)
	}

	err = check(c, Outcome{Errno: syscall.EINVAL, Buf: []byte{0, 9}})
	if !errors.As(err, &mm) || mm.Field != "buf[1]" || mm.Got != 9 || mm.Want != 2 {
		t.Fatalf("expected buf[1] mismatch, got %v", err)
	}

	err = check(c, Outcome{Errno: syscall.EINVAL, Buf: []byte{0}})
	if !errors.As(err, &mm) || mm.Got != -1 {
		t.Fatalf("expected short buffer mismatch, got %v", err)
	}

	if err := check(c, Outcome{Errno: syscall.EINVAL, Buf: []byte{0, 2, 7}}); err != nil {
		t.Fatalf("unexpected mismatch: %v", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRunner(envshim.New(envshim.MapEnviron{}), &bytes.Buffer{}, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCasesNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Cases() {
		if strings.TrimSpace(c.Name) == "" {
			t.Fatalf("case with empty name")
		}
		if seen[c.Name] {
			t.Fatalf("duplicate case %q", c.Name)
		}
		seen[c.Name] = true
	}
	if len(seen) != 11 {
		t.Fatalf("expected 11 cases, got %d", len(seen))
	}
}
