package sandsim

import (
	"image/color"
	"math/rand"
)

// SolidState is the behavior state carried by movable solids (sand, dirt,
// rainbow sand): an integer fall velocity and the fractional gravity carry
// that converts to whole-cell velocity steps once it crosses 1.0.
type SolidState struct {
	VelX, VelY   int
	GravityAccum float64
}

// LiquidState is the behavior state carried by liquids (water): the same
// gravity model as SolidState plus a horizontal velocity used to pick a
// dispersion direction.
type LiquidState struct {
	VelX, VelY   int
	GravityAccum float64
}

// GasState is the behavior state carried by gases (steam, helium): a
// sideways direction flipped whenever a tick ends without a move.
type GasState struct {
	SidewaysDir int
}

// Cell is the unit of the grid: a material identity, its rendered color,
// and (for movable categories only) behavior state. The Solid/Liquid/Gas
// pointers are nil unless Kind's category needs them, mirroring the
// teacher's Cell{Type, Fish *FishState, Shark *SharkState} shape.
type Cell struct {
	Kind  MaterialKind
	Color color.RGBA

	Solid  *SolidState
	Liquid *LiquidState
	Gas    *GasState
}

// newCell constructs a cell of the given kind, drawing its color from the
// palette and allocating the behavior state its category needs.
func newCell(kind MaterialKind, p *palette, rng *rand.Rand) (Cell, error) {
	c, err := p.colorOf(kind.paletteKey())
	if err != nil {
		return Cell{}, err
	}
	cell := Cell{Kind: kind, Color: c}
	switch kind.Category() {
	case CategoryMovableSolid:
		cell.Solid = &SolidState{VelY: -1}
	case CategoryLiquid:
		vx := 1
		if rng.Intn(2) == 0 {
			vx = -1
		}
		cell.Liquid = &LiquidState{VelX: vx, VelY: -1}
	case CategoryGas:
		dir := 1
		if rng.Intn(2) == 0 {
			dir = -1
		}
		cell.Gas = &GasState{SidewaysDir: dir}
	}
	return cell, nil
}

// isSwappable reports whether a cell of fromCategory may move into a cell
// of toCategory, per spec §4.C's compatibility table.
func isSwappable(fromCategory, toCategory Category) bool {
	switch toCategory {
	case CategoryEmpty:
		return fromCategory == CategoryGas || fromCategory == CategoryLiquid || fromCategory == CategoryMovableSolid
	case CategoryGas:
		return fromCategory == CategoryLiquid || fromCategory == CategoryMovableSolid
	case CategoryLiquid:
		return fromCategory == CategoryMovableSolid
	default: // immovable solid
		return false
	}
}
