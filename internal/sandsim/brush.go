package sandsim

// SpawnDisk writes name into every cell within radius r of canvas-space
// center (cx, cy) (Euclidean distance strictly less than r), inverting y
// to world space, activating every affected chunk, and refreshing the
// color buffer for exactly those chunks. It reports *UnknownMaterialError,
// without mutating the grid, if name isn't registered.
//
// Mirrors the original backend's spawn_in_radius, including its use of an
// exact affected-chunk set (not the disk's bounding box) before the color
// buffer refresh.
func (g *Grid) SpawnDisk(cx, cy, r int, name string) error {
	kind, err := LookupMaterial(name)
	if err != nil {
		return err
	}

	radiusSq := r * r
	startX, endX := clampRange(cx-r, cx+r, g.width)
	startY, endY := clampRange(cy-r, cy+r, g.height)

	affected := make(map[int]struct{})

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy >= radiusSq {
				continue
			}

			cell, err := newCell(kind, g.palette, g.rng)
			if err != nil {
				return err
			}

			worldY := g.height - 1 - y
			g.cells[g.index(x, worldY)] = cell
			g.activateChunk(x, worldY)
			affected[g.chunkIndex(x/g.chunk, worldY/g.chunk)] = struct{}{}
		}
	}

	g.refreshColors(affected)
	g.log.Debug().Str("grid_id", g.id.String()).Int("cx", cx).Int("cy", cy).Int("r", r).Str("material", kind.String()).Msg("spawn disk")
	return nil
}

func clampRange(lo, hi, size int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > size-1 {
		hi = size - 1
	}
	return lo, hi
}
