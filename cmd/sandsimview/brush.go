package main

import "github.com/hajimehoshi/ebiten/v2"

// handleBrush turns a held left mouse button into a SpawnDisk call at the
// cursor's grid-cell position, the brush/spawn contract spec §4.F
// describes for an external collaborator: cursor -> brush -> cell writes.
func (g *game) handleBrush() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	cx, cy := mx/pixelScale, my/pixelScale
	if cx < 0 || cx >= g.grid.Width() || cy < 0 || cy >= g.grid.Height() {
		return
	}
	_ = g.grid.SpawnDisk(cx, cy, g.brushRadius, g.brushKind)
}
