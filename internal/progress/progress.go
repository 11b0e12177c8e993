package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tracker renders an in-place spinner with a file counter while a bulk
// filesystem operation runs.
type Tracker struct {
	mu      sync.Mutex
	total   int
	current int
	message string
	started time.Time
	out     io.Writer
	done    chan struct{}
	stopped chan struct{}
}

func NewProgress(total int, message string) *Tracker {
	t := &Tracker{
		total:   total,
		message: message,
		started: time.Now(),
		out:     os.Stdout,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go t.render()
	return t
}

func (t *Tracker) render() {
	defer close(t.stopped)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-t.done:
			t.mu.Lock()
			fmt.Fprintf(t.out, "\r✓ %s (%d files, %s)          \n",
				t.message, t.total, time.Since(t.started).Round(time.Millisecond))
			t.mu.Unlock()
			return

		case <-ticker.C:
			t.mu.Lock()
			fmt.Fprintf(t.out, "\r%s %s [%d/%d]  ",
				frames[frame%len(frames)], t.message, t.current, t.total)
			t.mu.Unlock()
			frame++
		}
	}
}

func (t *Tracker) Increment() {
	t.mu.Lock()
	t.current++
	t.mu.Unlock()
}

// Finish stops the spinner and returns only after the final summary line
// has been written, so later output cannot interleave with it.
func (t *Tracker) Finish() {
	close(t.done)
	<-t.stopped
}
