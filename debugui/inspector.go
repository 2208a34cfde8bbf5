package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
)

// BuildingRow is one line of the building table.
type BuildingRow struct {
	ID        building.ID
	Template  string
	Anchor    string
	Size      string
	Radius    int
	Deletable bool
}

// BuildingRows lists the registered buildings of s ordered by slot.
func BuildingRows(s *session.Session) []BuildingRow {
	var rows []BuildingRow
	for b := range s.Buildings.All() {
		fp := b.Footprint()
		rows = append(rows, BuildingRow{
			ID:        b.ID,
			Template:  b.Template.ID,
			Anchor:    fp.Anchor.String(),
			Size:      fmt.Sprintf("%dx%d", fp.Area.Width, fp.Area.Height),
			Radius:    fp.BuildingRadius,
			Deletable: fp.Deletable,
		})
	}
	slices.SortFunc(rows, func(a, b BuildingRow) int {
		return cmp.Compare(a.ID.Slot(), b.ID.Slot())
	})
	return rows
}

// Inspector shows the placement state, the economy and the grid sets of the
// attached session, with buttons that push placement triggers.
type Inspector struct {
	session  *session.Session
	push     func(placement.Trigger)
	selected building.ID
	invalid  string
}

// NewInspector creates an inspector that sends triggers to push.
func NewInspector(push func(placement.Trigger)) *Inspector {
	return &Inspector{push: push}
}

// Watch switches to s.
func (in *Inspector) Watch(s *session.Session) {
	in.session = s
	in.selected = 0
	in.invalid = ""
}

// Render draws the session window.
func (in *Inspector) Render() {
	s := in.session
	if s == nil {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 160), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 250), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	econ := s.Placement.Economy()
	imgui.Text(fmt.Sprintf("Level: %s", s.Level.Name))
	imgui.Text(fmt.Sprintf("State: %s  Hovered: %v", s.Placement.State(), s.Placement.Hovered()))
	imgui.Text(fmt.Sprintf("Available: %d (start %d + collected %d - spent %d)",
		econ.Available(), econ.Starting, econ.Collected, econ.Spent))
	if s.Won() {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "LEVEL COMPLETE")
	}

	imgui.Separator()
	buildable, occupied, influence, claimed := s.Grid.Sizes()
	imgui.Text(fmt.Sprintf("Buildable: %d  Occupied: %d", buildable, occupied))
	imgui.Text(fmt.Sprintf("Influence: %d  Claimed resources: %d", influence, claimed))
	if imgui.Button("Check invariants") {
		in.invalid = "ok"
		if err := s.Grid.CheckInvariants(); err != nil {
			in.invalid = err.Error()
		}
	}
	if in.invalid != "" {
		imgui.SameLine()
		imgui.Text(in.invalid)
	}

	imgui.Separator()
	for i, t := range s.Catalog.Templates {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(fmt.Sprintf("%s (%d)", t.Name, t.ResourceCost)) {
			in.push(placement.Select(t))
		}
	}
	if s.Placement.State() == placement.Placing && imgui.Button("Cancel") {
		in.push(placement.Cancel)
	}

	if imgui.TreeNodeStr("Buildings") {
		in.renderBuildings(s)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Goals") {
		cells, reached := s.Goals()
		for i, c := range cells {
			imgui.BulletText(fmt.Sprintf("%v reached=%t", c, reached[i]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (in *Inspector) renderBuildings(s *session.Session) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("BuildingTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("ID")
	imgui.TableSetupColumn("Template")
	imgui.TableSetupColumn("Anchor")
	imgui.TableSetupColumn("Size")
	imgui.TableSetupColumn("Radius")
	imgui.TableHeadersRow()

	for _, row := range BuildingRows(s) {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		label := fmt.Sprintf("%d:%d", row.ID.Slot(), row.ID.Generation())
		if imgui.SelectableBoolV(label, in.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			in.selected = row.ID
		}
		imgui.TableNextColumn()
		imgui.Text(row.Template)
		imgui.TableNextColumn()
		imgui.Text(row.Anchor)
		imgui.TableNextColumn()
		imgui.Text(row.Size)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", row.Radius))
	}
	imgui.EndTable()

	b, ok := s.Buildings.Get(in.selected)
	if !ok {
		return
	}
	fp := b.Footprint()
	imgui.Text(fmt.Sprintf("Instance: %s", b.Instance))
	imgui.Text(fmt.Sprintf("Position: %.0f,%.0f  Cost: %d", b.X, b.Y, fp.ResourceCost))
	imgui.Text(fmt.Sprintf("Resource radius: %d  Deletable: %t", fp.ResourceCollectionRadius, fp.Deletable))
}
