// Package debugui provides Dear ImGui inspector windows for a running session.
// Windows are registered as items and rendered by a tick system, so they draw
// inside the session's frame.
package debugui

import (
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/buildgrid/tick"
)

// Item holds a Dear ImGui render function called once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type options struct {
	poll func() InputState
}

// Option configures a System.
type Option func(*options)

// WithInputSource replaces the Dear ImGui IO query. Useful when no ImGui
// context exists.
func WithInputSource(fn func() InputState) Option {
	return func(o *options) { o.poll = fn }
}

func pollImgui() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// System updates the input state and defers every item's render function to
// the frame's command flush.
type System struct {
	Input InputState

	items []*Item
	poll  func() InputState
}

// NewSystem creates a system with no items.
func NewSystem(opts ...Option) *System {
	o := options{poll: pollImgui}
	for _, opt := range opts {
		opt(&o)
	}
	return &System{poll: o.poll}
}

// Add registers a render function.
func (s *System) Add(render func()) *Item {
	item := &Item{Render: render}
	s.items = append(s.items, item)
	return item
}

// Remove unregisters item.
func (s *System) Remove(item *Item) {
	s.items = slices.DeleteFunc(s.items, func(i *Item) bool { return i == item })
}

// Len returns the number of items.
func (s *System) Len() int {
	return len(s.items)
}

// Capture reports the last polled input state.
func (s *System) Capture() (mouse, keyboard bool) {
	return s.Input.WantCaptureMouse, s.Input.WantCaptureKeyboard
}

// Execute implements tick.System.
func (s *System) Execute(frame *tick.Frame) {
	s.Input = s.poll()
	for _, item := range s.items {
		frame.Commands.Defer(item.Render)
	}
}
