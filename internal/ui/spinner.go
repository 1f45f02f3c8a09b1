package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner is a blocking terminal spinner for the sequenced parts of a
// command, before the interactive session takes over the screen.
type Spinner struct {
	message  string
	frames   []string
	interval time.Duration
	done     chan struct{}
	stopped  bool
}

func newSpinner(style spinner.Spinner, interval time.Duration, message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   style.Frames,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// NewSpinner creates a spinner for general operations (Dot style).
func NewSpinner(message string) *Spinner {
	return newSpinner(spinner.Dot, 80*time.Millisecond, message)
}

// NewConnectionSpinner creates a spinner for network operations
// (Globe style).
func NewConnectionSpinner(message string) *Spinner {
	return newSpinner(spinner.Globe, 180*time.Millisecond, message)
}

// NewWaitingSpinner creates a spinner for waiting on remote events
// (Points style).
func NewWaitingSpinner(message string) *Spinner {
	return newSpinner(spinner.Points, 100*time.Millisecond, message)
}

func (s *Spinner) Start() {
	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				return
			default:
				frame := SpinnerStyle.Render(s.frames[i%len(s.frames)])
				fmt.Printf("\r%s %s", frame, s.message)
				i++
				time.Sleep(s.interval)
			}
		}
	}()
}

func (s *Spinner) Stop() {
	if !s.stopped {
		s.stopped = true
		close(s.done)
		fmt.Print("\r\033[K") // Clear the line
	}
}

func (s *Spinner) Success(message string) {
	s.Stop()
	fmt.Printf("%s %s\n", SuccessStyle.Render(IconSuccess), message)
}

// RunSpinner starts a general spinner and returns its stop function.
func RunSpinner(message string) func() {
	sp := NewSpinner(message)
	sp.Start()
	return sp.Stop
}

// RunConnectionSpinner starts a connection spinner and returns its
// stop function.
func RunConnectionSpinner(message string) func() {
	sp := NewConnectionSpinner(message)
	sp.Start()
	return sp.Stop
}

// RunWaitingSpinner starts a waiting spinner and returns its stop
// function.
func RunWaitingSpinner(message string) func() {
	sp := NewWaitingSpinner(message)
	sp.Start()
	return sp.Stop
}
