package cli

import (
	"fmt"
	"io"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/envcompat/internal/config"
	"github.com/baaaaaaaka/envcompat/internal/conformance"
	"github.com/baaaaaaaka/envcompat/internal/envshim"
	"github.com/baaaaaaaka/envcompat/internal/tracelog"
)

type checkOptions struct {
	quiet   bool
	list    bool
	verbose bool
}

// parseCheckFlags reads the forwarded argument vector. Argument files come
// from a fuzzer, so a malformed flag resets every option to its default and
// the checks still run.
func parseCheckFlags(name string, args []string) checkOptions {
	var opts checkOptions
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "Print nothing when every check passes")
	fs.BoolVar(&opts.list, "list", false, "List the checks before running them")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Trace each check to stderr")
	if err := fs.Parse(args); err != nil {
		return checkOptions{}
	}
	return opts
}

func newTestCmd(settings config.Settings, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           defaultProg,
		Short:         "Check the PUTENV_S/GETENV_S environment shims",
		Long:          "Flags: -q/--quiet, --list, -v/--verbose. Malformed or unknown flags are ignored.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		// The checks always run, whatever the argument vector holds.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := parseCheckFlags(cmd.Name(), args)
			out := cmd.OutOrStdout()
			if opts.list {
				printCases(out, conformance.Cases())
			}
			runLog := log
			if opts.verbose && !settings.Verbose {
				runLog = tracelog.NewLogger(cmd.ErrOrStderr(), true)
				defer func() { _ = runLog.Sync() }()
			}
			runner := conformance.NewRunner(envshim.New(nil), out, runLog)
			if err := runner.Run(cmd.Context()); err != nil {
				return err
			}
			if !opts.quiet {
				_, _ = fmt.Fprintf(out, "PASS: %d checks\n", len(runner.Cases))
			}
			return nil
		},
	}
	return cmd
}

func printCases(w io.Writer, cases []conformance.Case) {
	width := 0
	for _, c := range cases {
		if n := runewidth.StringWidth(c.Name); n > width {
			width = n
		}
	}
	for i, c := range cases {
		_, _ = fmt.Fprintf(w, "%2d  %s  return=%s errno=%s\n",
			i+1, runewidth.FillRight(c.Name, width), statusName(c.Want), statusName(c.WantErrno))
	}
}

func statusName(e syscall.Errno) string {
	switch e {
	case 0:
		return "0"
	case syscall.EINVAL:
		return "EINVAL"
	case syscall.ERANGE:
		return "ERANGE"
	}
	return fmt.Sprintf("%d", int(e))
}
