package sandsim

// Step advances the world by one global tick (spec §4.E):
//
//  1. Snapshot which chunks were active, clear the active set and the
//     per-cell processed bitmap.
//  2. Scan world rows from y=0 (the floor) upward; within a row, scan left-to-right or
//     right-to-left, chosen by a fresh coin flip each row, to avoid
//     directional bias in lateral flow.
//  3. Skip cells already processed this tick (arrived-into cells are not
//     revisited) and cells whose chunk wasn't active last tick.
//  4. Invoke the cell's behavior; on a successful move, mark the Moore
//     neighborhood of the source chunk active for next tick.
//  5. Refresh the color buffer for every chunk touched by a move.
func (g *Grid) Step() {
	prevActive := make([]bool, len(g.activeChunks))
	copy(prevActive, g.activeChunks)
	for i := range g.activeChunks {
		g.activeChunks[i] = false
	}
	for i := range g.processed {
		g.processed[i] = false
	}
	g.changedChunks = make(map[int]struct{})

	for y := 0; y < g.height; y++ {
		reverse := g.rng.Intn(2) == 1
		start, end, step := 0, g.width, 1
		if reverse {
			start, end, step = g.width-1, -1, -1
		}

		for x := start; x != end; x += step {
			idx := g.index(x, y)
			if g.processed[idx] {
				continue
			}
			chunkIdx := g.chunkIndex(x/g.chunk, y/g.chunk)
			if !prevActive[chunkIdx] {
				continue
			}

			g.movedThisCall = false
			g.stepCell(x, y, y)

			if g.movedThisCall {
				g.markNeighborsActive(x, y)
			}
		}
	}

	g.refreshColors(g.changedChunks)
}
