package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/gol-board/model"
	"github.com/sheikhrachel/gol-board/utils"
)

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Width = 5
	config.Height = 5
	config.Pattern = model.PatternBlinker
	config.FrameRate = time.Millisecond
	config.Interactive = false
	return config
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		want   command
		wantOK bool
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), cmdQuit, true},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), cmdQuit, true},
		{"n steps", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), cmdStep, true},
		{"a toggles auto", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), cmdToggleAuto, true},
		{"other rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{"arrow ignored", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyCommand(tt.ev)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("keyCommand() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInitializeGame(t *testing.T) {
	grid, err := initializeGame(testConfig())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	if grid.CountLivingCells() != 3 {
		t.Errorf("blinker seed has %d living cells", grid.CountLivingCells())
	}

	config := testConfig()
	config.Pattern = "unknown"
	if _, err = initializeGame(config); err == nil {
		t.Errorf("unknown pattern should fail")
	}

	config = testConfig()
	config.Width = 0
	if _, err = initializeGame(config); err == nil {
		t.Errorf("zero width should fail")
	}
}

func TestCheckStopConditions(t *testing.T) {
	config := testConfig()
	config.MaxGenerations = 10

	tests := []struct {
		name        string
		living      int
		generation  int
		stagnant    bool
		stopOnStuck bool
		want        bool
	}{
		{"running", 5, 3, false, true, false},
		{"extinct", 0, 3, false, true, true},
		{"stagnant", 5, 3, true, true, true},
		{"stagnant but allowed", 5, 3, true, false, false},
		{"generation limit", 5, 10, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.StopWhenStagnant = tt.stopOnStuck
			if got, _ := checkStopConditions(tt.living, tt.generation, tt.stagnant, config); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunHeadlessStopsOnStagnation(t *testing.T) {
	config := testConfig()
	grid, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}

	var out bytes.Buffer
	if err = runHeadless(context.Background(), config, grid, &out, false); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if !strings.Contains(out.String(), "Stopped after stagnation detected") {
		t.Errorf("expected stagnation stop, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Gen: 2 |") {
		t.Errorf("blinker should be flagged on generation 2, got:\n%s", out.String())
	}
}

func TestRunHeadlessHonoursContext(t *testing.T) {
	config := testConfig()
	config.Pattern = model.PatternGlider
	config.Width, config.Height = 40, 40
	config.MaxGenerations = 0
	config.FrameRate = time.Hour
	grid, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err = runHeadless(ctx, config, grid, &out, false); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if !strings.Contains(out.String(), "Shutting down gracefully") {
		t.Errorf("expected graceful shutdown, got:\n%s", out.String())
	}
}

func newSimulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	return screen
}

func TestRunInteractiveSteps(t *testing.T) {
	config := testConfig()
	config.FrameRate = time.Hour
	grid, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	start := grid.GetGridHash()

	screen := newSimulationScreen(t)
	screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- runInteractive(context.Background(), screen, config, grid) }()

	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("runInteractive did not return after quit")
	}
	if err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	// two steps bring the blinker back to its starting phase
	if grid.GetGridHash() != start {
		t.Errorf("expected blinker back in its starting phase after two steps")
	}
	if grid.CountLivingCells() != 3 {
		t.Errorf("blinker has %d living cells", grid.CountLivingCells())
	}
}

func TestRunInteractiveAutoAdvance(t *testing.T) {
	config := testConfig()
	config.Pattern = model.PatternGlider
	config.Width, config.Height = 12, 12
	config.FrameRate = time.Millisecond
	grid, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	start := grid.GetGridHash()

	screen := newSimulationScreen(t)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- runInteractive(context.Background(), screen, config, grid) }()

	// no step key is sent, only the ticker can advance the grid
	time.Sleep(100 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("runInteractive did not return after quit")
	}
	if err != nil {
		t.Fatalf("runInteractive: %v", err)
	}
	if grid.GetGridHash() == start {
		t.Errorf("grid did not advance while auto-advance was on")
	}
}

func TestRunInteractiveQuitWhileAutoAdvancing(t *testing.T) {
	// quitting mid-run must finalize the screen only after drawing has stopped
	for range 20 {
		config := testConfig()
		config.FrameRate = time.Microsecond
		grid, err := initializeGame(config)
		if err != nil {
			t.Fatalf("initializeGame: %v", err)
		}

		screen := newSimulationScreen(t)
		screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

		done := make(chan error, 1)
		go func() { done <- runInteractive(context.Background(), screen, config, grid) }()

		select {
		case err = <-done:
			if err != nil {
				t.Fatalf("runInteractive: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("runInteractive did not return after quit")
		}
	}
}

func TestRunInteractiveHonoursContext(t *testing.T) {
	grid, err := initializeGame(testConfig())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}

	screen := newSimulationScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runInteractive(ctx, screen, testConfig(), grid) }()
	cancel()

	select {
	case err = <-done:
		if err != nil {
			t.Fatalf("runInteractive: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("runInteractive did not return after cancel")
	}
}

func TestDrawShowsBothViews(t *testing.T) {
	grid, err := initializeGame(testConfig())
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	screen := newSimulationScreen(t)
	defer screen.Fini()

	draw(screen, grid, 0, false, true)

	cells, width, _ := screen.GetContents()
	rowText := func(y int) string {
		var sb strings.Builder
		for x := range width {
			if r := cells[y*width+x].Runes; len(r) > 0 {
				sb.WriteRune(r[0])
			}
		}
		return sb.String()
	}

	if header := rowText(0); !strings.Contains(header, cellsTitle) || !strings.Contains(header, neighborsTitle) {
		t.Errorf("header row missing titles: %q", header)
	}
	// blinker row of the neighbor view sits one line below the title
	if row := rowText(3); !strings.Contains(row, "11211") {
		t.Errorf("neighbor counts missing from row: %q", row)
	}
	if status := rowText(grid.Height() + 2); !strings.Contains(status, "Living: 3") {
		t.Errorf("status line missing living count: %q", status)
	}
}
