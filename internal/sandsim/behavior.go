package sandsim

// swapFunc is the signature of Grid.swap, the only way the behaviors below
// move cells: it exchanges the cells at (fromX,fromY) and (toX,toY) and
// records that a move occurred. Behaviors never assign g.cells directly.
type swapFunc func(fromX, fromY, toX, toY int)

// stepCell dispatches one behavior invocation for the cell at (x,y),
// keyed on its category. It is a closed dispatch over a closed variant
// set (spec §4.B) rather than interface-based polymorphism.
func (g *Grid) stepCell(x, y int, stepIndex int) {
	idx := g.index(x, y)
	switch g.cells[idx].Kind.Category() {
	case CategoryMovableSolid:
		g.stepMovableSolid(x, y, stepIndex)
	case CategoryLiquid:
		g.stepLiquid(x, y, stepIndex)
	case CategoryGas:
		g.stepGas(x, y)
	default:
		// Empty and immovable solids never act.
	}
}

// canEnter reports whether a mover of fromCategory may swap into (x,y):
// in-bounds and compatible per the swap table. Out-of-bounds is treated
// as non-swappable, never propagated as an error (spec §7).
func (g *Grid) canEnter(fromCategory Category, x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return isSwappable(fromCategory, g.cells[g.index(x, y)].Kind.Category())
}

// --- 4.C.2 Movable solid (Sand, Dirt, Rainbow Sand) ---

func (g *Grid) stepMovableSolid(x, y, stepIndex int) {
	idx := g.index(x, y)
	s := g.cells[idx].Solid

	applyGravity(&s.GravityAccum, &s.VelY, g.cfg.Gravity, g.cfg.MaxFallSpeed)

	if g.tryFall(CategoryMovableSolid, x, y, s.VelY) {
		return
	}
	if g.tryDiagonal(CategoryMovableSolid, x, y, s.VelY, stepIndex) {
		return
	}
	s.VelY = -1
}

// --- 4.C.3 Liquid (Water) ---

func (g *Grid) stepLiquid(x, y, stepIndex int) {
	idx := g.index(x, y)
	l := g.cells[idx].Liquid

	applyGravity(&l.GravityAccum, &l.VelY, g.cfg.Gravity, g.cfg.MaxFallSpeed)
	capVelocity(&l.VelX, &l.VelY, g.cfg.MaxFallSpeed)

	if g.tryFall(CategoryLiquid, x, y, l.VelY) {
		return
	}
	if g.tryDiagonal(CategoryLiquid, x, y, l.VelY, stepIndex) {
		return
	}
	g.disperseHorizontally(x, y, l)
	l.VelY = -1
}

// --- 4.C.4 Gas (Helium, Steam) ---

type gasOption struct {
	dx, dy int
	chance float64
}

func (g *Grid) stepGas(x, y int) {
	g.activateChunk(x, y)

	idx := g.index(x, y)
	gs := g.cells[idx].Gas

	options := make([]gasOption, 0, 3+g.cfg.GasDispersalRange)
	options = append(options,
		gasOption{0, 1, g.cfg.GasOptionProbability},
		gasOption{-1, 1, g.cfg.GasOptionProbability},
		gasOption{1, 1, g.cfg.GasOptionProbability},
	)
	for i := 1; i <= g.cfg.GasDispersalRange; i++ {
		options = append(options, gasOption{gs.SidewaysDir * i, 0, g.cfg.GasOptionProbability})
	}

	for _, opt := range options {
		if g.rng.Float64() < opt.chance && g.tryMove(CategoryGas, x, y, x+opt.dx, y+opt.dy) {
			return
		}
	}
	gs.SidewaysDir = -gs.SidewaysDir
}

// --- shared gravity/fall/diagonal helpers (4.C.2 step 1-3, 4.C.3 step 1-4) ---

func applyGravity(accum *float64, vy *int, gravity float64, maxFallSpeed int) {
	*accum += gravity
	if *accum >= 1.0 {
		whole := int(*accum)
		*vy -= whole
		if *vy < -maxFallSpeed {
			*vy = -maxFallSpeed
		}
		*accum -= float64(whole)
	}
}

func capVelocity(vx, vy *int, maxFallSpeed int) {
	if *vx > 10 {
		*vx = 10
	}
	if *vx < -10 {
		*vx = -10
	}
	if *vy > 0 {
		*vy = 0
	}
	if *vy < -maxFallSpeed {
		*vy = -maxFallSpeed
	}
}

// tryFall walks downward from y toward y+vy (vy <= 0) while each next cell
// is swappable, then swaps to the furthest reached position in one move.
func (g *Grid) tryFall(category Category, x, y, vy int) bool {
	targetY := y + vy
	if targetY < 0 {
		targetY = 0
	}
	cur := y
	for cur > targetY && g.canEnter(category, x, cur-1) {
		cur--
	}
	if cur < y {
		g.swap(x, y, x, cur)
		return true
	}
	return false
}

// tryDiagonal tries the two diagonal-fall destinations in an order that
// flips with stepIndex's parity, preventing directional drift (spec §4.C.2
// step 3 / §4.C.3 step 4).
func (g *Grid) tryDiagonal(category Category, x, y, vy, stepIndex int) bool {
	first, second := -1, 1
	if stepIndex%2 != 0 {
		first, second = 1, -1
	}
	if g.tryMove(category, x, y, x+first, y+vy) {
		return true
	}
	return g.tryMove(category, x, y, x+second, y+vy)
}

func (g *Grid) tryMove(category Category, x, y, toX, toY int) bool {
	if !g.canEnter(category, toX, toY) {
		return false
	}
	g.swap(x, y, toX, toY)
	return true
}

// disperseHorizontally implements spec §4.C.3 step 5: the liquid prefers
// to flow along a surface (a non-swappable cell directly below the
// candidate), not hover. It flips direction when a horizontal step is
// blocked and stops advancing (without flipping) once the next open cell
// would leave it unsupported (the cell below that target is swappable).
func (g *Grid) disperseHorizontally(x, y int, l *LiquidState) {
	direction := 1
	if l.VelX < 0 {
		direction = -1
	} else if l.VelX > 0 {
		direction = 1
	}

	remaining := g.cfg.LiquidDispersionRate
	furthest := x
	for remaining > 0 {
		target := furthest + direction
		if target < 0 || target >= g.width || !g.canEnter(CategoryLiquid, target, y) {
			l.VelX = -l.VelX
			if l.VelX < 0 {
				direction = -1
			} else {
				direction = 1
			}
			remaining--
			continue
		}
		supported := y-1 < 0 || !g.canEnter(CategoryLiquid, target, y-1)
		if supported {
			furthest = target
		} else {
			break
		}
		remaining--
	}
	if furthest != x {
		g.swap(x, y, furthest, y)
	}
}
