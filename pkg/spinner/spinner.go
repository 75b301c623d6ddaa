// Package spinner renders a single-line progress indicator for long running commands.
//
// A Spinner animates one line at a time. Start begins a line, UpdateMessage changes its text, and
// one of Succeed, Fail, Info or Preserve ends it with a status symbol so another Start can follow.
// NextStep ends the current line as a success and starts the next one in a single call.
//
//	s := spinner.New(os.Stderr)
//	s.Start("Resolving dependencies")
//	s.NextStep("Compiling")
//	s.Succeed("Build finished")
package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	bubblespinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	clearLine  = "\r\033[K"
)

// Spinner is a progress indicator. All methods are safe for concurrent use; the zero value is not
// usable, create one with [New].
type Spinner struct {
	out        io.Writer
	frames     []string
	interval   time.Duration
	hideCursor bool

	success, failure, info *color.Color

	running atomic.Bool

	mu     sync.Mutex
	msg    string
	idx    int
	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures a [Spinner].
type Option func(*Spinner)

// WithStyle uses the frames and frame rate of one of the bubbles spinner styles, e.g.
// bubblespinner.MiniDot.
func WithStyle(style bubblespinner.Spinner) Option {
	return func(s *Spinner) {
		WithFrames(style.Frames)(s)
		WithInterval(style.FPS)(s)
	}
}

func WithFrames(frames []string) Option {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(s *Spinner) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithHideCursor(hide bool) Option {
	return func(s *Spinner) {
		s.hideCursor = hide
	}
}

// WithColor forces colored status symbols on or off. By default symbols are colored when out is
// a terminal and NO_COLOR is unset.
func WithColor(enabled bool) Option {
	return func(s *Spinner) {
		for _, c := range []*color.Color{s.success, s.failure, s.info} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// New creates a spinner writing to out. The cursor is hidden while spinning when out is a
// terminal.
func New(out io.Writer, opts ...Option) *Spinner {
	s := &Spinner{
		out:      out,
		frames:   bubblespinner.Dot.Frames,
		interval: bubblespinner.Dot.FPS,
		success:  color.New(color.FgGreen),
		failure:  color.New(color.FgRed),
		info:     color.New(color.FgBlue),
	}
	tty := isTerminal(out)
	s.hideCursor = tty
	WithColor(tty && os.Getenv("NO_COLOR") == "")(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Running reports whether a line is currently animating.
func (s *Spinner) Running() bool {
	return s.running.Load()
}

// Start begins animating msg. If the spinner is already running only the message changes.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if !s.running.CompareAndSwap(false, true) {
		s.render()
		return
	}
	s.idx = 0
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	if s.hideCursor {
		fmt.Fprint(s.out, hideCursor)
	}
	s.render()
	go s.loop(s.stopCh, s.doneCh)
}

// UpdateMessage replaces the text of the current line.
func (s *Spinner) UpdateMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if s.running.Load() {
		s.render()
	}
}

// NextStep ends the current line as a success and starts animating msg on the next line.
func (s *Spinner) NextStep(msg string) {
	s.mu.Lock()
	if s.running.Load() {
		fmt.Fprintf(s.out, "%s%s %s\n", clearLine, s.success.Sprint("✔"), s.msg)
	}
	s.mu.Unlock()
	s.Start(msg)
}

// Succeed ends the current line with a success symbol. An empty msg keeps the current text.
func (s *Spinner) Succeed(msg string) {
	s.finish(s.success.Sprint("✔")+" ", msg)
}

// Fail ends the current line with a failure symbol. An empty msg keeps the current text.
func (s *Spinner) Fail(msg string) {
	s.finish(s.failure.Sprint("✖")+" ", msg)
}

// Info ends the current line with an informational symbol. An empty msg keeps the current text.
func (s *Spinner) Info(msg string) {
	s.finish(s.info.Sprint("ℹ")+" ", msg)
}

// Preserve ends the current line keeping its text without a symbol. An empty msg keeps the
// current text.
func (s *Spinner) Preserve(msg string) {
	s.finish("", msg)
}

// Stop halts the animation and clears the current line. It is a no-op if the spinner is not
// running.
func (s *Spinner) Stop() {
	if !s.halt() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, clearLine)
	s.restoreCursor()
}

func (s *Spinner) finish(prefix, msg string) {
	s.halt()
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		msg = s.msg
	}
	fmt.Fprintf(s.out, "%s%s%s\n", clearLine, prefix, msg)
	s.restoreCursor()
	s.msg = ""
}

// halt stops the render loop and waits for it to exit. It reports whether the spinner was
// running.
func (s *Spinner) halt() bool {
	s.mu.Lock()
	if !s.running.CompareAndSwap(true, false) {
		s.mu.Unlock()
		return false
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	return true
}

func (s *Spinner) restoreCursor() {
	if s.hideCursor {
		fmt.Fprint(s.out, showCursor)
	}
}

func (s *Spinner) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-stopCh:
			return
		}
	}
}

func (s *Spinner) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return
	}
	s.idx = (s.idx + 1) % len(s.frames)
	s.render()
}

// render draws the current frame. s.mu must be held.
func (s *Spinner) render() {
	frame := s.frames[s.idx%len(s.frames)]
	if s.msg == "" {
		fmt.Fprintf(s.out, "%s%s", clearLine, frame)
		return
	}
	fmt.Fprintf(s.out, "%s%s %s", clearLine, frame, s.msg)
}
