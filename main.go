package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Println("Error loading configuration:", err)
			os.Exit(1)
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, config)
	stop()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config utils.Config) error {
	grid, err := initializeGame(config)
	if err != nil {
		return err
	}

	if !config.Interactive {
		return runHeadless(ctx, config, grid, os.Stdout, true)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[run] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[run] failed to initialize screen")
	}
	return runInteractive(ctx, screen, config, grid)
}
