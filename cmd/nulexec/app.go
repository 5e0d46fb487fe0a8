//go:build linux

package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/desertwitch/nularray/internal/capability"
	"github.com/desertwitch/nularray/internal/configuration"
	"github.com/desertwitch/nularray/internal/cstring"
	"github.com/desertwitch/nularray/internal/nulterm"
	"github.com/desertwitch/nularray/internal/projection"
	"github.com/dustin/go-humanize"
)

type execProvider interface {
	Execve(path cstring.CString, argv, envp nulterm.Viewer[byte]) error
	Execvpe(file string, argv, envp nulterm.Viewer[byte]) error
	Chdir(path cstring.CString) error
	Chroot(path cstring.CString) error
}

type capProvider interface {
	Capget(pid int) (*capability.Set, error)
	Capset(pid int, s *capability.Set) error
}

type configProvider interface {
	BuildEnvironment(spec configuration.EnvironmentSpec) (map[string]string, error)
}

// Options describes a single program execution.
type Options struct {
	Program          string
	Args             []string
	Argv0            string
	Chdir            string
	Chroot           string
	Search           bool
	ClearInheritable bool
	DryRun           bool
	Env              configuration.EnvironmentSpec
}

// App prepares the argument and environment arrays of a program and replaces
// the current process with it.
type App struct {
	execOps   execProvider
	capOps    capProvider
	configOps configProvider
	out       io.Writer
}

// NewApp returns a pointer to a new [App].
func NewApp(execOps execProvider, capOps capProvider, configOps configProvider, out io.Writer) *App {
	return &App{
		execOps:   execOps,
		capOps:    capOps,
		configOps: configOps,
		out:       out,
	}
}

// Launch executes the program described by opts. On success it only returns
// for a dry run; otherwise the process image has been replaced.
func (app *App) Launch(opts Options) error {
	if opts.Program == "" {
		return fmt.Errorf("(app) %w", ErrNoProgram)
	}

	argv, envp, err := app.prepare(opts)
	if err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	layout := newLayout(argv, envp)
	slog.Debug("Prepared execution arrays.",
		"program", opts.Program,
		"argc", layout.Argc,
		"envc", layout.Envc,
		"size", humanize.IBytes(layout.Size),
	)

	if opts.DryRun {
		if err := app.report(layout, argv, envp); err != nil {
			return fmt.Errorf("(app-report) %w", err)
		}

		return nil
	}

	if err := app.enter(opts); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	if opts.ClearInheritable {
		// Capabilities are per thread and the exec must happen on the
		// thread that dropped them.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := app.clearInheritable(); err != nil {
			return fmt.Errorf("(app) %w", err)
		}
	}

	slog.Debug("Replacing process image.", "program", opts.Program, "search", opts.Search)

	if opts.Search {
		err = app.execOps.Execvpe(opts.Program, argv, envp)
	} else {
		path, perr := cstring.New(opts.Program)
		if perr != nil {
			return fmt.Errorf("(app) %w", perr)
		}
		err = app.execOps.Execve(path, argv, envp)
	}
	if err != nil {
		return fmt.Errorf("(app-exec) %w: %w", ErrExecFailed, err)
	}

	return nil
}

// prepare builds the argument and environment arrays.
func (app *App) prepare(opts Options) (*projection.CStrings, *projection.CStrings, error) {
	argv0 := opts.Argv0
	if argv0 == "" {
		argv0 = opts.Program
	}

	args := make([]string, 0, len(opts.Args)+1)
	args = append(args, argv0)
	args = append(args, opts.Args...)

	argv, err := projection.Strings(args)
	if err != nil {
		return nil, nil, fmt.Errorf("(argv) %w", err)
	}

	env, err := app.configOps.BuildEnvironment(opts.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("(envp) %w", err)
	}

	envp, err := projection.Environ(env)
	if err != nil {
		return nil, nil, fmt.Errorf("(envp) %w", err)
	}

	return argv, envp, nil
}

// enter changes the root and working directory, in that order, so that a
// relative working directory resolves within the new root.
func (app *App) enter(opts Options) error {
	if opts.Chroot != "" {
		path, err := cstring.New(opts.Chroot)
		if err != nil {
			return err
		}
		if err := app.execOps.Chroot(path); err != nil {
			return err
		}

		slog.Debug("Changed root directory.", "path", opts.Chroot)

		if opts.Chdir == "" {
			if err := app.execOps.Chdir(cstring.Lit("/")); err != nil {
				return err
			}
		}
	}

	if opts.Chdir != "" {
		path, err := cstring.New(opts.Chdir)
		if err != nil {
			return err
		}
		if err := app.execOps.Chdir(path); err != nil {
			return err
		}

		slog.Debug("Changed working directory.", "path", opts.Chdir)
	}

	return nil
}

// clearInheritable empties the inheritable capability set of the calling
// thread.
func (app *App) clearInheritable() error {
	caps, err := app.capOps.Capget(0)
	if err != nil {
		return err
	}

	if caps.Get(capability.Inheritable) == 0 {
		return nil
	}

	slog.Debug("Clearing inheritable capabilities.",
		"caps", caps.Get(capability.Inheritable).String(),
	)

	caps.Put(capability.Inheritable, 0)

	return app.capOps.Capset(0, caps)
}
