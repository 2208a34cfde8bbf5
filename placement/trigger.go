package placement

import (
	"fmt"

	"github.com/plus3/buildgrid/catalog"
)

// TriggerKind enumerates the input events the controller reacts to.
type TriggerKind uint8

const (
	// TriggerSelect starts placing Trigger.Template.
	TriggerSelect TriggerKind = iota + 1
	// TriggerConfirm places the pending building.
	TriggerConfirm
	// TriggerCancel abandons the pending building.
	TriggerCancel
	// TriggerDestroy removes the building under the pointer.
	TriggerDestroy
	// TriggerSecondary cancels while placing and destroys otherwise.
	TriggerSecondary
)

// Trigger is an input event already mapped from whatever binding produced it.
type Trigger struct {
	Kind     TriggerKind
	Template *catalog.Template
}

// Select returns a trigger that starts placing t.
func Select(t *catalog.Template) Trigger {
	return Trigger{Kind: TriggerSelect, Template: t}
}

var (
	Confirm = Trigger{Kind: TriggerConfirm}
	Cancel  = Trigger{Kind: TriggerCancel}
	Destroy = Trigger{Kind: TriggerDestroy}
	// Secondary is the context action of a second mouse button. The
	// controller resolves it from its state when it is handled.
	Secondary = Trigger{Kind: TriggerSecondary}
)

func (t Trigger) String() string {
	switch t.Kind {
	case TriggerSelect:
		if t.Template == nil {
			return "select(nil)"
		}
		return "select(" + t.Template.ID + ")"
	case TriggerConfirm:
		return "confirm"
	case TriggerCancel:
		return "cancel"
	case TriggerDestroy:
		return "destroy"
	case TriggerSecondary:
		return "secondary"
	}
	return fmt.Sprintf("Trigger(%d)", t.Kind)
}

// Input is polled by the controller once per frame.
type Input interface {
	// Pointer returns the pointer's world position.
	Pointer() (x, y float64)
	// Drain returns the triggers received since the last call, oldest first.
	Drain() []Trigger
}

// Queue is an Input fed programmatically. It is what scripted and test sessions use.
type Queue struct {
	X, Y     float64
	triggers []Trigger
}

// Point moves the pointer.
func (q *Queue) Point(x, y float64) {
	q.X, q.Y = x, y
}

// Push appends triggers.
func (q *Queue) Push(triggers ...Trigger) {
	q.triggers = append(q.triggers, triggers...)
}

// Pointer implements Input.
func (q *Queue) Pointer() (float64, float64) {
	return q.X, q.Y
}

// Drain implements Input.
func (q *Queue) Drain() []Trigger {
	out := q.triggers
	q.triggers = nil
	return out
}
