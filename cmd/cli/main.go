package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/config"
	"github.com/iamasit07/connect4-solo/internal/logger"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/internal/transport/cli"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	difficulty := pflag.StringP("difficulty", "d", cfg.BotDifficulty, "computer strength: easy, medium or hard")
	depth := pflag.Int("depth", cfg.SearchDepth, "search depth used by the hard computer")
	verbose := pflag.BoolP("verbose", "v", false, "log search activity to stderr")
	pflag.Parse()

	logr := logger.Nop()
	if *verbose {
		if logr, err = logger.New("development"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logr.Sync()

	for _, warning := range cfg.Warnings {
		logr.Warn(warning)
	}

	if err := run(*difficulty, *depth, cfg, logr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(difficulty string, depth int, cfg *config.Config, logr *zap.SugaredLogger) error {
	if depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", depth)
	}

	sessionManager := game.NewSessionManager(nil, nil, nil, game.Settings{
		HardDepth:         depth,
		DefaultDifficulty: bot.ParseDifficulty(cfg.BotDifficulty, bot.DifficultyHard),
		BotDelay:          cfg.BotMoveDelay(),
	}, logr)

	return cli.NewConsole(sessionManager, os.Stdin, os.Stdout, logr).Play(difficulty)
}
