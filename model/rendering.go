package model

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	// LiveGlyph marks a live cell in RenderCells output
	LiveGlyph = '█'
	// DeadGlyph marks a dead cell in RenderCells output
	DeadGlyph = ' '

	clearCmd = "clear"
)

// RenderCells draws the grid one line per row, one rune per column
func (g *Grid) RenderCells() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height * 3)
	for row := range g.height {
		for column := range g.width {
			if g.cells[g.index(row, column)] == 0 {
				sb.WriteRune(DeadGlyph)
			} else {
				sb.WriteRune(LiveGlyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderNeighborCounts draws each cell as the digit of its live neighbor count
func (g *Grid) RenderNeighborCounts() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := range g.height {
		for column := range g.width {
			sb.WriteByte('0' + byte(g.liveNeighbors(row, column)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TerminalRenderer writes plain-text frames for headless runs
type TerminalRenderer struct {
	Out           io.Writer
	ShowNeighbors bool
}

// Display renders the grid, followed by the neighbor counts when enabled
func (r *TerminalRenderer) Display(g *Grid) {
	fmt.Fprint(r.Out, g.RenderCells())
	if r.ShowNeighbors {
		fmt.Fprintln(r.Out, strings.Repeat("-", g.width))
		fmt.Fprint(r.Out, g.RenderNeighborCounts())
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
