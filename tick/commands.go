package tick

// Commands buffers work that must not run while systems are executing. The
// buffer is flushed after the last system of a frame.
type Commands struct {
	defers []func()
}

// NewCommands creates an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Defer queues fn.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued commands in order and resets the buffer. Commands deferred
// while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
