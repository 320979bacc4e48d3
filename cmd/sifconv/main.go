package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jacoelho/sif/internal/config"
	"github.com/jacoelho/sif/internal/logging"
	"github.com/jacoelho/sif/internal/metrics"
	"github.com/jacoelho/sif/pkg/schema"
	"github.com/jacoelho/sif/pkg/sifxml"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// usageError marks failures caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// errDiffer reports that diff found differences; it prints nothing more.
var errDiffer = errors.New("documents differ")

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if stopErr := a.stop(); err == nil {
		err = stopErr
	}
	var usage usageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDiffer):
		return 1
	case errors.As(err, &usage):
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		if writeErr := writeln(stderr, root.UsageString()); writeErr != nil {
			return 1
		}
		return 2
	default:
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath     string
	logLevel       string
	cpuProfilePath string
	memProfilePath string

	cfg      config.Config
	log      zerolog.Logger
	codec    *metrics.Codec
	stopCPU  func() error
	prepared bool
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sifconv",
		Short:         "Convert, compare and inspect SIF messages across protocol versions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q", args[0])}
			}
			return nil
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.prepare()
		},
		RunE: func(*cobra.Command, []string) error {
			return usageError{errors.New("a command is required")}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides configuration)")
	flags.StringVar(&a.cpuProfilePath, "cpuprofile", "", "write CPU profile to file")
	flags.StringVar(&a.memProfilePath, "memprofile", "", "write memory profile to file")

	root.AddCommand(
		a.convertCmd(),
		a.diffCmd(),
		a.inspectCmd(),
		a.versionsCmd(),
	)
	return root
}

// prepare loads configuration and builds the logger and codec.
func (a *app) prepare() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return usageError{err}
		}
	}
	a.cfg = cfg
	a.log, err = logging.New(a.stderr, "sifconv", cfg.Logging())
	if err != nil {
		return err
	}
	c, err := sifxml.NewCodec(schema.Default().Registry, cfg.Options().WithLogger(a.log))
	if err != nil {
		return err
	}
	a.codec = metrics.Instrument(c, metrics.NewRecorder())
	a.prepared = true

	if a.cpuProfilePath != "" {
		a.stopCPU, err = startCPUProfile(a.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}
	return nil
}

// stop flushes profiles and metrics after the command ran.
func (a *app) stop() error {
	var errs []error
	if a.stopCPU != nil {
		errs = append(errs, a.stopCPU())
	}
	if a.memProfilePath != "" && a.prepared {
		errs = append(errs, writeMemProfile(a.memProfilePath))
	}
	if a.prepared && a.cfg.Metrics.Enabled {
		errs = append(errs, a.codec.Recorder().WriteText(a.stderr))
	}
	return errors.Join(errs...)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
