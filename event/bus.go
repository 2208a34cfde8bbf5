package event

import (
	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/grid"
)

// Bus groups the topics of one session.
type Bus struct {
	// BuildingPlaced fires after a building has been activated and registered.
	BuildingPlaced Topic[*building.Building]
	// BuildingDestroyed fires while the building is still registered.
	BuildingDestroyed Topic[*building.Building]
	// GridStateChanged fires after every completed grid update.
	GridStateChanged Topic[struct{}]
	// ResourceTilesUpdated carries the number of claimed resource tiles.
	ResourceTilesUpdated Topic[int]
	// AvailableResourcesChanged carries the spendable resource count.
	AvailableResourcesChanged Topic[int]
	// GoalReached carries the goal cell that entered an influence radius.
	GoalReached Topic[grid.Cell]
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}
