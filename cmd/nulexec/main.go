//go:build linux

// Command nulexec replaces itself with another program, after assembling its
// argument and environment arrays from flags and environment files.
//
//	nulexec [flags] -- program [args...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/desertwitch/nularray/internal/capability"
	"github.com/desertwitch/nularray/internal/configuration"
	"github.com/desertwitch/nularray/internal/errno"
	"github.com/desertwitch/nularray/internal/unistd"
	"github.com/lmittmann/tint"
	"golang.org/x/sys/unix"
)

const (
	exitFailure       = 1
	exitNotExecutable = 126
	exitNotFound      = 127
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)

	return nil
}

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile       = flag.String("config", "", "read NULEXEC_* settings from this environment file")
	argv0            = flag.String("argv0", "", "program name as seen by the program (default: program)")
	chdir            = flag.String("chdir", "", "change to this working directory before exec")
	chroot           = flag.String("chroot", "", "change to this root directory before exec")
	search           = flag.Bool("search", false, "search the program in PATH")
	clearEnv         = flag.Bool("clear-env", false, "do not inherit the current environment")
	clearInheritable = flag.Bool("clear-inheritable", false, "drop all inheritable capabilities before exec")
	dryRun           = flag.Bool("dry-run", false, "print the prepared arrays instead of executing")
	debug            = flag.Bool("debug", false, "enable debug logging")

	envFiles stringList
	setVars  stringList
)

func setupLogging(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// exitCodeFor maps an exec failure to the exit status a shell would report.
// Failures before the exec stage always yield exitFailure.
func exitCodeFor(err error) int {
	if !errors.Is(err, ErrExecFailed) {
		return exitFailure
	}

	switch errno.Code(err) {
	case unix.ENOENT:
		return exitNotFound
	case unix.EACCES, unix.ENOEXEC, unix.EISDIR:
		return exitNotExecutable
	default:
		return exitFailure
	}
}

// buildOptions merges the settings of the optional configuration file with
// the command line. Flags that were set explicitly take precedence.
func buildOptions(configHandler *configuration.Handler, args []string) (Options, error) {
	opts := Options{
		Argv0:            *argv0,
		Chdir:            *chdir,
		Chroot:           *chroot,
		Search:           *search,
		ClearInheritable: *clearInheritable,
		DryRun:           *dryRun,
		Env: configuration.EnvironmentSpec{
			Base:      os.Environ(),
			Clear:     *clearEnv,
			Files:     envFiles,
			Overrides: setVars,
		},
	}

	if len(args) > 0 {
		opts.Program = args[0]
		opts.Args = args[1:]
	}

	if *configFile == "" {
		return opts, nil
	}

	envMap, err := configHandler.ReadGeneric(*configFile)
	if err != nil {
		return opts, fmt.Errorf("(config) %w", err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if !set["chdir"] {
		opts.Chdir = configHandler.MapKeyToString(envMap, configuration.SettingChdir)
	}
	if !set["chroot"] {
		opts.Chroot = configHandler.MapKeyToString(envMap, configuration.SettingChroot)
	}
	if !set["search"] {
		opts.Search = configHandler.MapKeyToBool(envMap, configuration.SettingSearch)
	}
	if !set["clear-env"] {
		opts.Env.Clear = configHandler.MapKeyToBool(envMap, configuration.SettingClearEnv)
	}
	if !set["clear-inheritable"] {
		opts.ClearInheritable = configHandler.MapKeyToBool(envMap, configuration.SettingClearInheritable)
	}
	opts.Env.Files = append(configHandler.MapKeyToList(envMap, configuration.SettingEnvFiles), opts.Env.Files...)

	return opts, nil
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	flag.Var(&envFiles, "env-file", "read environment variables from this file (repeatable)")
	flag.Var(&setVars, "set", "set an environment variable NAME=value (repeatable)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	setupLogging(level)

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	opts, err := buildOptions(configHandler, flag.Args())
	if err != nil {
		slog.Error("Failed to read the configuration.",
			"err", err,
		)
		ExitCode = exitFailure

		return
	}

	app := NewApp(&unistd.Unix{}, &capability.Linux{}, configHandler, os.Stdout)

	if err := app.Launch(opts); err != nil {
		slog.Error("Failed to execute the program.",
			"program", opts.Program,
			"version", Version,
			"err", err,
		)

		ExitCode = exitCodeFor(err)
	}
}
