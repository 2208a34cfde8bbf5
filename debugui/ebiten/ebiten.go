// Package ebiten provides the Dear ImGui backend for the Ebiten frontend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend so it can be drawn as an
// overlay of the game.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates the backend and its window. ImGui's ini file is disabled.
func New(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// BeginFrame starts an ImGui frame. Call it before the session update.
func (b *ImguiBackend) BeginFrame() {
	b.EbitenBackend.BeginFrame()
}

// EndFrame finishes the ImGui frame started by BeginFrame.
func (b *ImguiBackend) EndFrame() {
	b.EbitenBackend.EndFrame()
}

// Draw renders the ImGui draw data over screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

// Layout forwards the window size to ImGui.
func (b *ImguiBackend) Layout(width, height int) {
	b.EbitenBackend.Layout(width, height)
}
