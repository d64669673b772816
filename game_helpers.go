package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/gol-board/model"
	"github.com/sheikhrachel/gol-board/utils"
)

// initializeGame builds the grid and seeds it with the configured pattern
func initializeGame(config utils.Config) (*model.Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	grid, err := model.NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	seed := uint64(config.RandomSeed())
	if err = grid.Seed(config.Pattern, rand.New(rand.NewPCG(seed, seed))); err != nil {
		return nil, err
	}
	return grid, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, grid *model.Grid) {
	fmt.Fprintf(out, "Pattern: %s | Neighbor view: %v\n", config.Pattern, config.ShowNeighbors)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		grid.Width(), grid.Height(), grid.CountLivingCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// updateGameState records the generation and returns status information
func updateGameState(
	grid *model.Grid,
	generation int,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := grid.CountLivingCells()
	stats.Update(generation, livingCells, grid.Width()*grid.Height(), time.Since(lastFrameTime))

	isStagnant := grid.IsStagnant()
	grid.UpdateHistory()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, stats.Density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	out io.Writer,
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
) {
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Peak Pop: %d | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.PeakPopulation, time.Since(stats.StartTime).Seconds())
	fmt.Fprintln(out)
}

// checkStopConditions determines if a headless run should end
func checkStopConditions(livingCells, generation int, isStagnant bool, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StopWhenStagnant && isStagnant {
		return true, "stagnation detected"
	}
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, fmt.Sprintf("maximum generations limit (%d)", config.MaxGenerations)
	}
	return false, ""
}

// runHeadless prints a frame per generation until a stop condition or ctx is done
func runHeadless(ctx context.Context, config utils.Config, grid *model.Grid, out io.Writer, clearScreen bool) error {
	renderer := &model.TerminalRenderer{Out: out, ShowNeighbors: config.ShowNeighbors}
	stats := utils.NewStats()
	displayGameInfo(out, config, grid)

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var (
		generation    = 0
		lastFrameTime = time.Now()
	)

	for {
		frameStart := time.Now()
		if clearScreen {
			renderer.Clear()
		}

		livingCells, density, status, isStagnant := updateGameState(grid, generation, lastFrameTime, stats)
		lastFrameTime = frameStart

		displayGameStatus(out, generation, livingCells, density, status, stats)
		renderer.Display(grid)

		if stop, reason := checkStopConditions(livingCells, generation, isStagnant, config); stop {
			fmt.Fprintf(out, "\nStopped after %s\n", reason)
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nShutting down gracefully...")
			fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
				generation, time.Since(stats.StartTime).Seconds())
			return nil
		case <-ticker.C:
		}

		grid.Step()
		generation++
	}
}
