package debugui

import (
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
)

// Panels is the default set of debug windows.
type Panels struct {
	System      *System
	Inspector   *Inspector
	Performance *PerformanceStats
}

// NewPanels creates the windows and registers them with a new System. push
// receives the triggers of the inspector's buttons.
func NewPanels(push func(placement.Trigger), opts ...Option) *Panels {
	p := &Panels{
		System:      NewSystem(opts...),
		Inspector:   NewInspector(push),
		Performance: NewPerformanceStats(120),
	}
	p.System.Add(p.Inspector.Render)
	p.System.Add(p.Performance.Render)
	return p
}

// Attach points the windows at s and adds the systems to its scheduler.
func (p *Panels) Attach(s *session.Session) {
	p.Inspector.Watch(s)
	p.Performance.Watch(s.Scheduler)
	s.Scheduler.Register(p.Performance, "frametime")
	s.Scheduler.Register(p.System, "debugui")
}

// Capture reports whether Dear ImGui wants the mouse or the keyboard.
func (p *Panels) Capture() (mouse, keyboard bool) {
	return p.System.Capture()
}
