// Package opener hands URLs to the outside world: the OS default handler,
// a program of the user's choice, or the system clipboard.
package opener

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

var (
	ErrNoOpener     = errors.New("no default opener for this platform")
	ErrNoClipboard  = errors.New("clipboard not available")
	ErrEmptyProgram = errors.New("program name is empty")
)

// OpenError reports a failed attempt to open URL.
type OpenError struct {
	URL     string
	Program string // empty = default opener
	Err     error
}

func (e *OpenError) Error() string {
	if e.Program != "" {
		return fmt.Sprintf("opening %s with %s: %v", e.URL, e.Program, e.Err)
	}
	return fmt.Sprintf("opening %s: %v", e.URL, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Opener launches URLs.
type Opener interface {
	// Open hands url to the platform's default handler.
	Open(url string) error
	// OpenWith spawns program with url as its only argument, without waiting for it.
	OpenWith(program, url string) error
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// System implements Opener and Clipboard with the running OS.
type System struct {
	goos  string
	start func(cmd *exec.Cmd) error
}

// NewSystem creates a System for the running OS.
func NewSystem() *System {
	return &System{
		goos:  runtime.GOOS,
		start: startDetached,
	}
}

// startDetached starts cmd and lets it outlive linkstash; it is never waited on.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// DefaultCommand returns the command line that opens url on goos.
func DefaultCommand(goos, url string) (name string, args []string, err error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "illumos", "solaris":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrNoOpener, goos)
	}
}

// Open implements Opener.
func (s *System) Open(url string) error {
	name, args, err := DefaultCommand(s.goos, url)
	if err != nil {
		return err
	}
	return s.start(exec.Command(name, args...))
}

// OpenWith implements Opener.
func (s *System) OpenWith(program, url string) error {
	if program == "" {
		return ErrEmptyProgram
	}
	return s.start(exec.Command(program, url))
}

// Copy implements Clipboard.
func (s *System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrNoClipboard, err)
	}
	return nil
}
