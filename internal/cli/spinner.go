package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Spinner animates a status message on a terminal while a blocking step
// runs. On a non-terminal writer it prints nothing.
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	mu      sync.Mutex
	active  bool
}

// newSpinner creates a spinner that also stops when ctx is cancelled.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		active:  isTerminal(w),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		if !s.active {
			select {
			case <-s.ctx.Done():
			case <-s.done:
			}
			return
		}

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	if !s.active {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess(s.w, "%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError(s.w, "%s", message)
}

// Cancelled reports whether the spinner's context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
