package session

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

const clearWidth = 20

// Indicator redraws a rotating glyph after a prefix until stopped.
type Indicator struct {
	out      *console
	prefix   string
	frames   []string
	interval time.Duration
	stopped  atomic.Bool
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

func (i *Indicator) run() {
	defer close(i.done)
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()
	for n := 0; !i.stopped.Load(); n++ {
		i.out.Printf("\r%s%s ", i.prefix, i.frames[n%len(i.frames)])
		select {
		case <-ticker.C:
		case <-i.stop:
		}
	}
	i.out.Printf("\r%s\r", strings.Repeat(" ", clearWidth))
}

// Stop requests cancellation and blocks until the indicator has cleared its line.
func (i *Indicator) Stop() {
	i.once.Do(func() {
		i.stopped.Store(true)
		close(i.stop)
	})
	<-i.done
}

// Done is closed once the indicator has exited
func (i *Indicator) Done() <-chan struct{} {
	return i.done
}

func startIndicator(out *console, prefix string, glyphs spinner.Spinner) *Indicator {
	if len(glyphs.Frames) == 0 {
		glyphs = spinner.Line
	}
	interval := glyphs.FPS
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ret := &Indicator{
		out:      out,
		prefix:   prefix,
		frames:   glyphs.Frames,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go ret.run()
	return ret
}
