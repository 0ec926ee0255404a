package sandsim

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Grid owns the cell array, the chunk-activity bitmap, and the RGBA
// projection buffer. It is the only mutator of simulation state: behaviors
// are Grid methods that probe neighbors through canEnter and move cells
// only through swap.
type Grid struct {
	id     uuid.UUID
	width  int
	height int
	chunk  int

	cells        []Cell
	activeChunks []bool
	processed    []bool
	colorBuffer  []byte

	rng     *rand.Rand
	palette *palette
	cfg     Config

	log zerolog.Logger

	// changedChunks accumulates, within a single Step call, the set of
	// chunk indices whose pixels need a color-buffer refresh (SetCell and
	// SpawnDisk build their own local sets). It mirrors the original backend's changed_chunks
	// unordered_set.
	changedChunks map[int]struct{}

	// movedThisCall is set by swap and cleared before each behavior
	// invocation, so the stepper can tell whether that one cell's
	// behavior call actually moved something (a shared changedChunks
	// set can't answer that once two cells touch the same chunk pair).
	movedThisCall bool

	chunksX, chunksY int
}

// NewGrid allocates a grid of w x h cells, chunked into chunk x chunk tiles,
// fills it with Empty, and initializes the color buffer. cfg supplies the
// tunable physics constants and the RNG seed; see DefaultConfig.
func NewGrid(w, h, chunk int, cfg Config) *Grid {
	chunksX := ceilDiv(w, chunk)
	chunksY := ceilDiv(h, chunk)

	g := &Grid{
		id:            uuid.New(),
		width:         w,
		height:        h,
		chunk:         chunk,
		cells:         make([]Cell, w*h),
		activeChunks:  make([]bool, chunksX*chunksY),
		processed:     make([]bool, w*h),
		colorBuffer:   make([]byte, w*h*4),
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		palette:       newDefaultPalette(cfg.Seed),
		cfg:           cfg,
		log:           newLogger(),
		changedChunks: make(map[int]struct{}),
		chunksX:       chunksX,
		chunksY:       chunksY,
	}

	empty, err := newCell(Empty, g.palette, g.rng)
	if err != nil {
		// Empty is always registered; a failure here is a programming error.
		panic(err)
	}
	for i := range g.cells {
		g.cells[i] = empty
	}
	g.refreshAllColors()

	g.log.Debug().Str("grid_id", g.id.String()).Int("width", w).Int("height", h).Int("chunk", chunk).Msg("grid constructed")
	return g
}

// ID returns the grid's stable instance identifier, for disambiguating
// multiple grids in logs.
func (g *Grid) ID() uuid.UUID { return g.id }

// Width returns the grid's width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's height in cells.
func (g *Grid) Height() int { return g.height }

// ColorBuffer returns the row-major RGBA projection buffer, in canvas
// (top-left origin) coordinates: ColorBuffer()[4*(cy*w+cx)+k] is the color
// of the cell the user sees at (cx, cy).
func (g *Grid) ColorBuffer() []byte { return g.colorBuffer }

func (g *Grid) index(x, y int) int { return y*g.width + x }

func (g *Grid) chunkIndex(cx, cy int) int { return cy*g.chunksX + cx }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// Get returns the cell at world-space (x, y) and whether it exists.
// Out-of-bounds reads return the zero Cell and false; callers treat this
// as impassable (spec §7, OutOfBoundsRead).
func (g *Grid) Get(x, y int) (Cell, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Cell{}, false
	}
	return g.cells[g.index(x, y)], true
}

// SetCell overwrites the cell the caller sees at canvas-space (x, y) with a
// freshly constructed cell of the named material, inverting y to world
// space, and activates the affected chunk. Returns *UnknownMaterialError
// without mutating the grid if name isn't registered.
func (g *Grid) SetCell(x, y int, name string) error {
	kind, err := LookupMaterial(name)
	if err != nil {
		return err
	}
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	cell, err := newCell(kind, g.palette, g.rng)
	if err != nil {
		return err
	}

	worldY := g.height - 1 - y
	g.cells[g.index(x, worldY)] = cell
	g.activateChunk(x, worldY)

	chunks := map[int]struct{}{g.chunkIndex(x/g.chunk, worldY/g.chunk): {}}
	g.refreshColors(chunks)
	return nil
}

// activateChunk sets the active bit for the chunk containing world-space
// (x, y).
func (g *Grid) activateChunk(x, y int) {
	g.activeChunks[g.chunkIndex(x/g.chunk, y/g.chunk)] = true
}

// markNeighborsActive sets the active bit for every chunk in the Moore
// neighborhood (including the center) of the chunk containing (x, y),
// clamped to grid bounds.
func (g *Grid) markNeighborsActive(x, y int) {
	cx, cy := x/g.chunk, y/g.chunk
	for dy := -1; dy <= 1; dy++ {
		ny := cy + dy
		if ny < 0 || ny >= g.chunksY {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := cx + dx
			if nx < 0 || nx >= g.chunksX {
				continue
			}
			g.activeChunks[g.chunkIndex(nx, ny)] = true
		}
	}
}

// IsChunkActive reports whether the chunk at chunk-space (cx, cy) is
// marked active (must be scanned next tick).
func (g *Grid) IsChunkActive(cx, cy int) bool {
	return g.activeChunks[g.chunkIndex(cx, cy)]
}

// ActiveChunkIndices returns the linear indices of all currently active
// chunks.
func (g *Grid) ActiveChunkIndices() []int {
	indices := make([]int, 0)
	for i, active := range g.activeChunks {
		if active {
			indices = append(indices, i)
		}
	}
	return indices
}

// swap exchanges the contents of (fromX,fromY) and (toX,toY), marks the
// destination processed for the remainder of the current tick, and
// records both endpoints' chunks as changed. It is the only function that
// mutates g.cells during a tick.
func (g *Grid) swap(fromX, fromY, toX, toY int) {
	fromIdx := g.index(fromX, fromY)
	toIdx := g.index(toX, toY)

	g.cells[fromIdx], g.cells[toIdx] = g.cells[toIdx], g.cells[fromIdx]
	g.processed[toIdx] = true
	g.movedThisCall = true

	g.changedChunks[g.chunkIndex(fromX/g.chunk, fromY/g.chunk)] = struct{}{}
	g.changedChunks[g.chunkIndex(toX/g.chunk, toY/g.chunk)] = struct{}{}
}

// refreshAllColors repaints the entire color buffer from the cell array.
func (g *Grid) refreshAllColors() {
	all := make(map[int]struct{}, g.chunksX*g.chunksY)
	for cy := 0; cy < g.chunksY; cy++ {
		for cx := 0; cx < g.chunksX; cx++ {
			all[g.chunkIndex(cx, cy)] = struct{}{}
		}
	}
	g.refreshColors(all)
}

// refreshColors repaints the color buffer for exactly the given chunk
// indices, matching the original backend's updateColorBuffer(chunks).
func (g *Grid) refreshColors(chunks map[int]struct{}) {
	for chunkIdx := range chunks {
		cx := chunkIdx % g.chunksX
		cy := chunkIdx / g.chunksX

		startX, startY := cx*g.chunk, cy*g.chunk
		endX, endY := startX+g.chunk, startY+g.chunk
		if endX > g.width {
			endX = g.width
		}
		if endY > g.height {
			endY = g.height
		}

		for y := startY; y < endY; y++ {
			for x := startX; x < endX; x++ {
				g.paintPixel(x, y)
			}
		}
	}
}

// paintPixel writes the color buffer entry for world-space (x, y) into the
// canvas-space slot the external renderer expects (y-inverted).
func (g *Grid) paintPixel(x, y int) {
	cell := g.cells[g.index(x, y)]
	canvasY := g.height - 1 - y
	base := (canvasY*g.width + x) * 4
	g.colorBuffer[base] = cell.Color.R
	g.colorBuffer[base+1] = cell.Color.G
	g.colorBuffer[base+2] = cell.Color.B
	g.colorBuffer[base+3] = cell.Color.A
}
