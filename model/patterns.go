package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Pattern names accepted by Seed
const (
	PatternRandom  = "random"
	PatternBlock   = "block"
	PatternBlinker = "blinker"
	PatternGlider  = "glider"
)

// ErrUnknownPattern is returned by Seed for a name it does not recognise
var ErrUnknownPattern = errors.New("unknown pattern")

var (
	blockShape = [][]uint8{
		{1, 1},
		{1, 1},
	}
	blinkerShape = [][]uint8{
		{1, 1, 1},
	}
	gliderShape = [][]uint8{
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	}
)

// fits checks that shape lies fully inside the grid with its top-left corner at (row, column)
func (g *Grid) fits(op string, shape [][]uint8, row, column int) error {
	lastRow, lastColumn := row+len(shape)-1, column+len(shape[0])-1
	if !g.contains(row, column) || !g.contains(lastRow, lastColumn) {
		return errors.Wrapf(ErrOutOfRange, "[%s] shape %dx%d at row %d, column %d on %dx%d grid",
			op, len(shape[0]), len(shape), row, column, g.width, g.height)
	}
	return nil
}

// place copies shape onto the grid with its top-left corner at (row, column).
// Nothing is written unless the whole shape fits.
func (g *Grid) place(op string, shape [][]uint8, row, column int) error {
	if err := g.fits(op, shape, row, column); err != nil {
		return err
	}
	for dr, line := range shape {
		for dc, v := range line {
			g.cells[g.index(row+dr, column+dc)] = v
		}
	}
	return nil
}

// AddBlock adds a 2x2 still life
func (g *Grid) AddBlock(row, column int) error {
	return g.place("AddBlock", blockShape, row, column)
}

// AddBlinker adds a horizontal period-2 blinker
func (g *Grid) AddBlinker(row, column int) error {
	return g.place("AddBlinker", blinkerShape, row, column)
}

// AddGlider adds a glider heading down and to the right
func (g *Grid) AddGlider(row, column int) error {
	return g.place("AddGlider", gliderShape, row, column)
}

// Seed clears the grid and fills it with the named pattern, centred.
// The random pattern draws every cell from rng. A pattern that does not fit
// leaves the grid as it was.
func (g *Grid) Seed(pattern string, rng *rand.Rand) error {
	var shape [][]uint8
	switch pattern {
	case PatternRandom:
		g.Randomize(rng)
		return nil
	case PatternBlock:
		shape = blockShape
	case PatternBlinker:
		shape = blinkerShape
	case PatternGlider:
		shape = gliderShape
	default:
		return errors.Wrapf(ErrUnknownPattern, "[Seed] %q", pattern)
	}

	row := (g.height - len(shape)) / 2
	column := (g.width - len(shape[0])) / 2
	if err := g.fits("Seed", shape, row, column); err != nil {
		return err
	}
	g.Clear()
	return g.place("Seed", shape, row, column)
}
