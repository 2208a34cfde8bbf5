package placement

// Economy is the resource ledger of a session.
type Economy struct {
	Starting  int
	Collected int
	Spent     int
}

// Available returns Starting + Collected - Spent.
func (e Economy) Available() int {
	return e.Starting + e.Collected - e.Spent
}

// CanAfford reports whether cost can be paid from the available resources.
func (e Economy) CanAfford(cost int) bool {
	return e.Available() >= cost
}
