//go:build linux

package main

import (
	"encoding/hex"
	"fmt"
	"unsafe"

	"github.com/desertwitch/nularray/internal/capability"
	"github.com/desertwitch/nularray/internal/cstring"
	"github.com/desertwitch/nularray/internal/nulterm"
	"github.com/desertwitch/nularray/internal/projection"
	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
)

// layout summarizes the memory handed to execve(2).
type layout struct {
	Argc        int
	Envc        int
	Words       int
	Size        uint64
	Fingerprint string
}

// newLayout measures both arrays as the kernel reads them: every pointer
// word including the sentinels, and every string including its NUL. The
// fingerprint hashes the strings in array order with a zero byte after each
// array, so it changes with any reordering or move between argv and envp.
func newLayout(argv, envp *projection.CStrings) *layout {
	l := &layout{
		Argc:  argv.Len(),
		Envc:  envp.Len(),
		Words: argv.View().Words() + envp.View().Words(),
	}
	l.Size = uint64(l.Words) * uint64(unsafe.Sizeof(uintptr(0)))

	h := blake3.New()
	for _, arr := range []nulterm.Slice[byte]{argv.View(), envp.View()} {
		for p := range arr.Elems() {
			s := cstring.GoString(p)
			l.Size += uint64(len(s)) + 1

			_, _ = h.WriteString(s)
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte{0})
	}
	l.Fingerprint = hex.EncodeToString(h.Sum(nil))

	return l
}

// report writes a dry run description of the prepared arrays.
func (app *App) report(l *layout, argv, envp *projection.CStrings) error {
	for i, p := range argv.View().All() {
		if _, err := fmt.Fprintf(app.out, "argv[%d] = %q\n", i, cstring.GoString(p)); err != nil {
			return err
		}
	}

	for i, p := range envp.View().All() {
		if _, err := fmt.Fprintf(app.out, "envp[%d] = %q\n", i, cstring.GoString(p)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(app.out, "argc=%d envc=%d words=%d size=%s blake3=%s\n",
		l.Argc, l.Envc, l.Words, humanize.IBytes(l.Size), l.Fingerprint); err != nil {
		return err
	}

	caps, err := app.capOps.Capget(0)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(app.out, "effective=[%s] permitted=[%s] inheritable=[%s]\n",
		caps.Get(capability.Effective),
		caps.Get(capability.Permitted),
		caps.Get(capability.Inheritable),
	)

	return err
}
