package session

import (
	"fmt"
	"io"
	"sync"
)

// console serialises writes of the loop and its indicator
type console struct {
	mux sync.Mutex
	w   io.Writer
}

func (c *console) Printf(format string, args ...interface{}) {
	c.mux.Lock()
	defer c.mux.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}
