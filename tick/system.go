// Package tick runs the per-frame update of a session: an ordered list of
// systems followed by a flush of the commands they deferred.
package tick

// System is a behaviour executed once per frame.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *Frame)

// Execute calls f.
func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}

// Frame is passed to every system during one update.
type Frame struct {
	Number    uint64
	DeltaTime float64
	Commands  *Commands
}
