//go:build windows

package terminal

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// windowsBackend negotiates VT processing on the console handles
// Console reads cannot be polled, so a helper goroutine feeds a channel
type windowsBackend struct {
	in         *os.File
	out        *os.File
	inFd       int
	outFd      int
	oldTerm    *term.State
	oldOutMode uint32
	reads      chan readResult
	done       chan struct{}
}

func newBackend() Backend {
	return &windowsBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *windowsBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a console")
	}

	out := windows.Handle(b.out.Fd())
	if err := windows.GetConsoleMode(out, &b.oldOutMode); err != nil {
		return fmt.Errorf("get console mode: %w", err)
	}
	mode := b.oldOutMode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.DISABLE_NEWLINE_AUTO_RETURN
	if err := windows.SetConsoleMode(out, mode); err != nil {
		return fmt.Errorf("enable virtual terminal processing: %w", err)
	}

	// MakeRaw also sets ENABLE_VIRTUAL_TERMINAL_INPUT on the input handle
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		windows.SetConsoleMode(out, b.oldOutMode)
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.oldTerm = old
	b.done = make(chan struct{})
	return nil
}

func (b *windowsBackend) Fini() {
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
		windows.SetConsoleMode(windows.Handle(b.out.Fd()), b.oldOutMode)
	}
	if b.done != nil {
		close(b.done)
		b.done = nil
	}
}

func (b *windowsBackend) Size() (int, int) {
	w, h, err := term.GetSize(b.outFd)
	if err != nil {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func (b *windowsBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *windowsBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if b.reads == nil {
		b.reads = make(chan readResult, 1)
		go feedReads(b.in, b.reads, b.done)
	}

	select {
	case <-stopCh:
		return nil, nil
	case res := <-b.reads:
		return res.data, res.err
	case <-time.After(100 * time.Millisecond):
		return nil, nil
	}
}
