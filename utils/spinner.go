package utils

import (
	"fmt"
	"io"
	"time"
)

// Spinner is a progress indicator written to a terminal.
type Spinner struct {
	w        io.Writer
	message  string
	start    time.Time
	stopChan chan struct{}
	done     chan struct{}
}

// NewSpinner instantiates a new Spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.message = message
	s.start = time.Now()
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprintf(s.w, "\r%s%s %c%s\n", s.message, SuccessColor, '✓', DefaultColor)
					return
				default:
					fmt.Fprintf(s.w, "\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and returns the time elapsed since Start.
func (s *Spinner) Stop() time.Duration {
	close(s.stopChan)
	<-s.done
	return time.Since(s.start)
}
