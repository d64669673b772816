package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-board/model"
	"github.com/sheikhrachel/gol-board/utils"
)

type command int

const (
	cmdStep command = iota
	cmdToggleAuto
	cmdRedraw
	cmdQuit
)

const (
	cellsTitle     = "Active Game"
	neighborsTitle = "Neighbour Count"
	helpText       = "q quit | n next generation | a toggle auto"
	panelGap       = 4
)

// errQuit ends the interactive session without reporting a failure
var errQuit = errors.New("quit requested")

// keyCommand maps a key press to a driver command
func keyCommand(ev *tcell.EventKey) (command, bool) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return cmdQuit, true
	}
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	switch ev.Rune() {
	case 'q':
		return cmdQuit, true
	case 'n':
		return cmdStep, true
	case 'a':
		return cmdToggleAuto, true
	}
	return 0, false
}

// runInteractive drives the grid from key presses on screen until quit or ctx is done.
// The screen must already be initialized; it is finalized before returning.
func runInteractive(ctx context.Context, screen tcell.Screen, config utils.Config, grid *model.Grid) error {
	eg, ctx := errgroup.WithContext(ctx)
	commands := make(chan command)
	simDone := make(chan struct{})

	// simulate is the only goroutine drawing, so Fini waits for it; Fini also unblocks PollEvent
	eg.Go(func() error {
		<-simDone
		screen.Fini()
		return nil
	})
	eg.Go(func() error {
		return pollKeys(ctx, screen, commands)
	})
	eg.Go(func() error {
		defer close(simDone)
		return simulate(ctx, screen, config, grid, commands)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// pollKeys forwards key presses as commands; it returns errQuit on a quit key
func pollKeys(ctx context.Context, screen tcell.Screen, commands chan<- command) error {
	for {
		var cmd command
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			cmd = cmdRedraw
		case *tcell.EventKey:
			var ok bool
			if cmd, ok = keyCommand(ev); !ok {
				continue
			}
			if cmd == cmdQuit {
				return errQuit
			}
		default:
			continue
		}

		select {
		case commands <- cmd:
		case <-ctx.Done():
			return nil
		}
	}
}

// simulate owns the grid: it steps on command or on every tick while auto-advance is on
func simulate(ctx context.Context, screen tcell.Screen, config utils.Config, grid *model.Grid, commands <-chan command) error {
	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var (
		generation = 0
		auto       = false
	)

	draw(screen, grid, generation, auto, config.ShowNeighbors)
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			switch cmd {
			case cmdStep:
				grid.Step()
				generation++
			case cmdToggleAuto:
				auto = !auto
			case cmdRedraw:
				screen.Sync()
			}
		case <-ticker.C:
			if !auto {
				continue
			}
			grid.Step()
			generation++
		}
		draw(screen, grid, generation, auto, config.ShowNeighbors)
	}
}

// draw puts the cell view and, optionally, the neighbor view side by side
func draw(screen tcell.Screen, grid *model.Grid, generation int, auto, showNeighbors bool) {
	screen.Clear()

	titleStyle := tcell.StyleDefault.Bold(true)
	drawBlock(screen, 0, 0, titleStyle, cellsTitle)
	drawBlock(screen, 0, 1, tcell.StyleDefault, grid.RenderCells())
	if showNeighbors {
		x := max(grid.Width(), len(cellsTitle)) + panelGap
		drawBlock(screen, x, 0, titleStyle, neighborsTitle)
		drawBlock(screen, x, 1, tcell.StyleDefault, grid.RenderNeighborCounts())
	}

	autoState := "off"
	if auto {
		autoState = "on"
	}
	status := fmt.Sprintf("Gen: %d | Living: %d | Auto: %s", generation, grid.CountLivingCells(), autoState)
	drawBlock(screen, 0, grid.Height()+2, tcell.StyleDefault, status)
	drawBlock(screen, 0, grid.Height()+3, tcell.StyleDefault.Dim(true), helpText)

	screen.Show()
}

// drawBlock writes multi-line text with its top-left corner at (x, y)
func drawBlock(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for dy, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		dx := 0
		for _, r := range line {
			screen.SetContent(x+dx, y+dy, r, nil, style)
			dx++
		}
	}
}
