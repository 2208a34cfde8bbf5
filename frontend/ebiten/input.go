package ebiten

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/buildgrid/placement"
)

// Action is what the game loop should do after applying input.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextLevel
)

const panSpeed = 8

var templateKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Snapshot is the input of one tick.
type Snapshot struct {
	CursorX, CursorY int
	Wheel            float64
	// Keys pressed since the previous tick.
	Keys []ebiten.Key
	// PanX and PanY are -1, 0 or 1 while a pan key is held.
	PanX, PanY float64
	// Left and Right are set on the tick a mouse button goes down.
	Left, Right bool

	CaptureMouse    bool
	CaptureKeyboard bool
}

func readSnapshot(keys []ebiten.Key) Snapshot {
	var in Snapshot
	in.CursorX, in.CursorY = ebiten.CursorPosition()
	_, in.Wheel = ebiten.Wheel()
	in.Keys = inpututil.AppendJustPressedKeys(keys[:0])
	in.Left = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Right = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.PanX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.PanX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.PanY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.PanY++
	}
	return in
}

// Apply turns one tick of input into camera movement and placement triggers.
// Keys are handled before mouse buttons so a template selected and confirmed
// in the same tick is placed.
func (g *Game) Apply(in Snapshot) Action {
	action := ActionNone
	if !in.CaptureKeyboard {
		action = g.applyKeys(in)
	}
	if in.CaptureMouse {
		return action
	}

	if in.Wheel != 0 {
		g.camera.ZoomAt(in.CursorX, in.CursorY, in.Wheel)
	}
	wx, wy := g.camera.ScreenToWorld(in.CursorX, in.CursorY)
	g.queue.Point(wx, wy)

	if in.Left {
		g.queue.Push(placement.Confirm)
	}
	if in.Right {
		g.queue.Push(placement.Secondary)
	}
	return action
}

func (g *Game) applyKeys(in Snapshot) Action {
	if in.PanX != 0 || in.PanY != 0 {
		g.camera.Pan(in.PanX*panSpeed, in.PanY*panSpeed)
	}

	for _, k := range in.Keys {
		switch {
		case k == ebiten.KeyQ:
			return ActionQuit
		case k == ebiten.KeyN && g.session.Won():
			return ActionNextLevel
		case k == ebiten.KeyEscape:
			g.queue.Push(placement.Cancel)
		case k == ebiten.KeyEnter || k == ebiten.KeySpace:
			g.queue.Push(placement.Confirm)
		case k == ebiten.KeyX || k == ebiten.KeyDelete || k == ebiten.KeyBackspace:
			g.queue.Push(placement.Destroy)
		default:
			if i := slices.Index(templateKeys, k); i >= 0 {
				if t := g.catalog.At(i); t != nil {
					g.queue.Push(placement.Select(t))
				}
			}
		}
	}
	return ActionNone
}
