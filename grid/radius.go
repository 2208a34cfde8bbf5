package grid

// InsideCircle reports whether the centre of c lies within radius of (cx, cy).
func InsideCircle(cx, cy float64, c Cell, radius int) bool {
	dx := cx - (float64(c.X) + 0.5)
	dy := cy - (float64(c.Y) + 0.5)
	return dx*dx+dy*dy <= float64(radius*radius)
}

// EffectiveRadius is the circle radius used when growing area by radius:
// half the longer side (integer division) plus radius.
func EffectiveRadius(area Area, radius int) int {
	return max(area.Width, area.Height)/2 + radius
}

// InRadius returns the cells around area that fall inside its grown circle and
// satisfy keep. Candidates are the area extended by radius on every side; each is
// tested against a circle centred on the area, so rectangular footprints grow a
// round region instead of a box. A nil keep accepts every cell.
func InRadius(area Area, radius int, keep func(Cell) bool) []Cell {
	if area.Empty() {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	cx, cy := area.Center()
	effective := EffectiveRadius(area, radius)
	end := area.End()

	cells := make([]Cell, 0, (area.Width+2*radius)*(area.Height+2*radius))
	for x := area.Origin.X - radius; x < end.X+radius; x++ {
		for y := area.Origin.Y - radius; y < end.Y+radius; y++ {
			c := Cell{X: x, Y: y}
			if !InsideCircle(cx, cy, c, effective) {
				continue
			}
			if keep != nil && !keep(c) {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}
