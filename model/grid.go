package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/rules"
)

// historySize is how many recent generation hashes are kept for cycle detection
const historySize = 5

var (
	// ErrInvalidDimensions is returned when a grid is built with a zero or negative side
	ErrInvalidDimensions = errors.New("grid dimensions must be at least 1x1")
	// ErrOutOfRange is returned for any cell access outside the grid
	ErrOutOfRange = errors.New("cell position out of range")
	// ErrInvalidCellValue is returned when a cell is set to something other than 0 or 1
	ErrInvalidCellValue = errors.New("cell value must be 0 or 1")
)

// Position is a (row, column) coordinate on the grid
type Position struct {
	Row    int
	Column int
}

// mooreOffsets lists the eight neighbor directions: NW, N, NE, W, E, SW, S, SE
var mooreOffsets = [rules.MaxNeighbors]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a bounded (non-wrapping) Game of Life board stored row-major
type Grid struct {
	width   int
	height  int
	cells   []uint8
	next    []uint8  // scratch buffer the next generation is built into
	history []string // recent generation hashes for cycle detection
}

// NewGrid creates a new grid with the specified dimensions, all cells dead
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] got %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
		next:   make([]uint8, width*height),
	}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Cells returns a copy of the flat row-major cell values
func (g *Grid) Cells() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// contains is the one boundary predicate every lookup goes through
func (g *Grid) contains(row, column int) bool {
	return row >= 0 && row < g.height && column >= 0 && column < g.width
}

func (g *Grid) index(row, column int) int {
	return row*g.width + column
}

func (g *Grid) outOfRange(op string, row, column int) error {
	return errors.Wrapf(ErrOutOfRange, "[%s] row %d, column %d on %dx%d grid",
		op, row, column, g.width, g.height)
}

// Get returns the value of the cell at (row, column)
func (g *Grid) Get(row, column int) (uint8, error) {
	if !g.contains(row, column) {
		return 0, g.outOfRange("Get", row, column)
	}
	return g.cells[g.index(row, column)], nil
}

// Set writes a 0/1 value to the cell at (row, column)
func (g *Grid) Set(row, column int, value uint8) error {
	if !g.contains(row, column) {
		return g.outOfRange("Set", row, column)
	}
	if value != rules.Dead && value != rules.Alive {
		return errors.Wrapf(ErrInvalidCellValue, "[Set] got %d", value)
	}
	g.cells[g.index(row, column)] = value
	return nil
}

// Clear kills every cell and forgets the history
func (g *Grid) Clear() {
	clear(g.cells)
	g.history = nil
}

// Neighbors returns the in-bounds Moore neighbors of (row, column)
func (g *Grid) Neighbors(row, column int) ([]Position, error) {
	if !g.contains(row, column) {
		return nil, g.outOfRange("Neighbors", row, column)
	}
	out := make([]Position, 0, len(mooreOffsets))
	for _, off := range mooreOffsets {
		if p := (Position{Row: row + off.Row, Column: column + off.Column}); g.contains(p.Row, p.Column) {
			out = append(out, p)
		}
	}
	return out, nil
}

// NeighborCount returns the number of live neighbors of (row, column), 0 through 8
func (g *Grid) NeighborCount(row, column int) (int, error) {
	if !g.contains(row, column) {
		return 0, g.outOfRange("NeighborCount", row, column)
	}
	return g.liveNeighbors(row, column), nil
}

// liveNeighbors counts against the current generation; (row, column) must be in range
func (g *Grid) liveNeighbors(row, column int) int {
	count := 0
	for _, off := range mooreOffsets {
		r, c := row+off.Row, column+off.Column
		if g.contains(r, c) {
			count += int(g.cells[g.index(r, c)])
		}
	}
	return count
}

// Step advances the grid by one generation.
// Every cell reads only the current generation; the result is built in the
// scratch buffer and swapped in once complete.
func (g *Grid) Step() {
	for row := range g.height {
		for column := range g.width {
			i := g.index(row, column)
			g.next[i] = rules.NextState(g.cells[i], g.liveNeighbors(row, column))
		}
	}
	g.cells, g.next = g.next, g.cells
}

// Randomize sets every cell to 0 or 1 with equal probability drawn from rng
func (g *Grid) Randomize(rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i] = uint8(rng.IntN(2))
	}
	g.history = nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, v := range g.cells {
		count += int(v)
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three
// recorded generations (still life, or an oscillator of period 2 or 3).
// Call it before UpdateHistory records the current generation.
func (g *Grid) IsStagnant() bool {
	currentHash := g.GetGridHash()
	for i := 1; i <= 3 && i <= len(g.history); i++ {
		if g.history[len(g.history)-i] == currentHash {
			return true
		}
	}
	return false
}
