// Command sandsimview is the Ebiten front-end for sandsim: it steps the
// simulation every other frame, blits the engine's RGBA color buffer to a
// window every frame, and turns mouse
// drags into brush strokes, the way the teacher's view_ebiten.go drove the
// Wa-Tor simulation's Update/Draw loop.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sandsim/sandsim/internal/sandsim"
)

const pixelScale = 4

type game struct {
	grid       *sandsim.Grid
	img        *ebiten.Image
	tick       int
	brushKind  string
	brushRadius int
}

func (g *game) Update() error {
	g.handleBrush()

	if g.tick%2 != 0 {
		g.tick++
		return nil
	}
	g.grid.Step()
	g.tick++
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.img.WritePixels(g.grid.ColorBuffer())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(pixelScale, pixelScale)
	screen.DrawImage(g.img, op)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return g.grid.Width() * pixelScale, g.grid.Height() * pixelScale
}

func main() {
	width := flag.Int("width", 200, "grid width in cells")
	height := flag.Int("height", 150, "grid height in cells")
	chunk := flag.Int("chunk", 16, "chunk size in cells")
	brush := flag.String("brush", "Sand", "material painted by mouse drag")
	radius := flag.Int("radius", 4, "brush radius in cells")
	flag.Parse()

	cfg := sandsim.DefaultConfig()
	cfg.Width, cfg.Height, cfg.ChunkSize = *width, *height, *chunk

	grid := sandsim.NewGrid(cfg.Width, cfg.Height, cfg.ChunkSize, cfg)

	g := &game{
		grid:        grid,
		img:         ebiten.NewImage(cfg.Width, cfg.Height),
		brushKind:   *brush,
		brushRadius: *radius,
	}

	ebiten.SetWindowSize(cfg.Width*pixelScale, cfg.Height*pixelScale)
	ebiten.SetWindowTitle(fmt.Sprintf("sandsim | %dx%d chunk=%d brush=%s", cfg.Width, cfg.Height, cfg.ChunkSize, *brush))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
