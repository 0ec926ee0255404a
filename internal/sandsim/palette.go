package sandsim

import (
	"image/color"
	"math/rand"
	"sync"
)

// palette holds, per material key, the ordered list of candidate colors and
// (for sequential keys like RAINBOW) the next index to hand out. Each Grid
// builds its own palette in NewGrid, so the sequential index is shared by
// the cells of one grid only; it is not shared across grids. The index
// only advances during cell construction (NewGrid, SetCell, SpawnDisk),
// never during Step.
type palette struct {
	mu         sync.Mutex
	colors     map[string][]color.RGBA
	sequential map[string]int // key present => sequential mode, value is next index
	rng        *rand.Rand
}

// colorOf returns one color for a palette key, chosen randomly or
// sequentially depending on the key's registration. It reports
// *UnknownMaterialError if the key has no registered colors.
func (p *palette) colorOf(key string) (color.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	colors, ok := p.colors[key]
	if !ok || len(colors) == 0 {
		return color.RGBA{}, &UnknownMaterialError{Name: key}
	}
	if idx, sequential := p.sequential[key]; sequential {
		c := colors[idx]
		p.sequential[key] = (idx + 1) % len(colors)
		return c, nil
	}
	return colors[p.rng.Intn(len(colors))], nil
}

// defaultPalette is the color table ported from the original backend's
// ColorConstants map: multiple candidate shades per solid (picked
// uniformly), single fixed shades for water/steam/empty, and the literal
// rainbow cycle (red, orange, yellow, green, blue, indigo, violet) for
// rainbow sand, advanced sequentially.
//
// EMPTY resolves spec §9's open question: the source disagreed on alpha
// (0 vs 255) across revisions; sandsim picks fully opaque black (alpha
// 255), matching the retained original_source/backend/Element/ColorConstants.h.
func newDefaultPalette(seed int64) *palette {
	return &palette{
		colors: map[string][]color.RGBA{
			"SAND": {
				{R: 240, G: 215, B: 150, A: 255},
				{R: 230, G: 200, B: 120, A: 255},
				{R: 220, G: 190, B: 100, A: 255},
				{R: 210, G: 180, B: 80, A: 255},
				{R: 200, G: 170, B: 60, A: 255},
			},
			"DIRT": {
				{R: 96, G: 47, B: 18, A: 255},
				{R: 135, G: 70, B: 32, A: 255},
				{R: 110, G: 54, B: 25, A: 255},
				{R: 145, G: 85, B: 40, A: 255},
				{R: 90, G: 44, B: 20, A: 255},
			},
			"WOOD": {
				{R: 205, G: 92, B: 52, A: 255},
				{R: 210, G: 105, B: 60, A: 255},
				{R: 190, G: 85, B: 40, A: 255},
				{R: 215, G: 100, B: 50, A: 255},
				{R: 180, G: 75, B: 30, A: 255},
			},
			"STONE": {
				{R: 150, G: 150, B: 150, A: 255},
				{R: 120, G: 120, B: 120, A: 255},
				{R: 180, G: 180, B: 180, A: 255},
				{R: 140, G: 140, B: 140, A: 255},
				{R: 160, G: 160, B: 160, A: 255},
			},
			"WATER": {
				{R: 28, G: 85, B: 234, A: 255},
			},
			"STEAM": {
				{R: 174, G: 174, B: 174, A: 255},
			},
			// HELIUM has no entry in the retained original source (see
			// SPEC_FULL.md); a paler, blue-tinted grey distinguishes it
			// from STEAM's uniform grey without inventing new behavior.
			"HELIUM": {
				{R: 220, G: 220, B: 235, A: 200},
			},
			"EMPTY": {
				{R: 0, G: 0, B: 0, A: 255},
			},
			"RAINBOW": {
				{R: 255, G: 0, B: 0, A: 255},   // red
				{R: 255, G: 127, B: 0, A: 255}, // orange
				{R: 255, G: 255, B: 0, A: 255}, // yellow
				{R: 0, G: 255, B: 0, A: 255},   // green
				{R: 0, G: 0, B: 255, A: 255},   // blue
				{R: 75, G: 0, B: 130, A: 255},  // indigo
				{R: 148, G: 0, B: 211, A: 255}, // violet
			},
		},
		sequential: map[string]int{"RAINBOW": 0},
		rng:        rand.New(rand.NewSource(seed)),
	}
}
