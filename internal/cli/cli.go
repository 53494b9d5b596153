package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/envcompat/internal/argfile"
	"github.com/baaaaaaaka/envcompat/internal/config"
	"github.com/baaaaaaaka/envcompat/internal/conformance"
	"github.com/baaaaaaaka/envcompat/internal/tracelog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const (
	exitPass     = 0
	exitMismatch = -1
	exitArgFile  = 1
	exitFailure  = 1

	defaultProg = "envcompat-test"
)

func Execute() int {
	return Main(os.Args, os.Stdout, os.Stderr)
}

// Main runs the harness for args, where args[0] is the program name. With an
// extra argument it is taken as an argument file whose first line replaces
// the command line; otherwise the checks run with args as given.
func Main(args []string, stdout, stderr io.Writer) int {
	settings := config.FromEnv()
	log := tracelog.NewLogger(stderr, settings.Verbose)
	defer func() { _ = log.Sync() }()
	log.Debug("starting", zap.String("version", buildVersion()), zap.Int("argc", len(args)))

	if len(args) < 2 {
		return runChecks(args, stdout, stderr, settings, log)
	}

	prog := args[0]
	adapter := &argfile.Adapter{Log: log}
	if settings.Verbose {
		adapter.Trace = tracelog.NewFile(settings.LogPath)
	}
	res, err := adapter.Parse(args[1], prog)
	if err != nil {
		if settings.Verbose {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		}
		return exitArgFile
	}
	return runChecks(res.Argv, stdout, stderr, settings, log)
}

func runChecks(argv []string, stdout, stderr io.Writer, settings config.Settings, log *zap.Logger) int {
	cmd := newTestCmd(settings, log)
	if len(argv) > 0 && argv[0] != "" {
		cmd.Use = argv[0]
	}
	// Non-nil so cobra never falls back to os.Args.
	rest := []string{}
	if len(argv) > 1 {
		rest = argv[1:]
	}
	cmd.SetArgs(rest)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitPass
	}
	var mm *conformance.MismatchError
	if errors.As(err, &mm) {
		return exitMismatch
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFailure
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
