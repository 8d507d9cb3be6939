// tilearcade runs tile-and-sprite console games in the terminal.
//
// Usage:
//
//	tilearcade list              - List available games
//	tilearcade play [game]       - Play a game (menu when no game is given)
//	tilearcade run <game>        - Run a game headless for a number of frames
//	tilearcade level <game>      - Print a game's generated level
//	tilearcade cues              - List, export or audition sound cues
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.tilearcade, ./configs)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilearcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tilearcade/internal/games/heartman"
	_ "github.com/vovakirdan/tilearcade/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// Loaded in PersistentPreRunE.
var (
	cfg    config.Config
	logger *log.Logger
	logOut io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilearcade",
	Short: "Tile Arcade - tile and sprite console games in your terminal",
	Long: `Tile Arcade emulates a small tile-and-sprite console: a cooperative
frame loop produces render commands and a refresh interrupt drains them
into video memory.

Available commands:
  list     - Show all available games
  play     - Play a game (interactive menu without an argument)
  run      - Run a game headless and print its final state
  level    - Print a game's generated level
  cues     - List, export or audition the sound cues

Examples:
  tilearcade list
  tilearcade play heartman
  tilearcade run snake --frames 600 --script moves.yaml
  tilearcade level heartman_plus
  tilearcade cues --out ./wav`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(cuesCmd)
}

// setup loads the config and builds the logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w, logOut = f, f
	}
	logger = newLogger(w, level)

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "frame_rate", cfg.Console.FrameRate, "games", len(cfg.Games))
	return nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "tilearcade",
		ReportTimestamp: true,
		Level:           level,
	})
}

// uiLogger returns a logger safe to use while a full-screen program owns the
// terminal: the log file if one was given, otherwise nothing.
func uiLogger() *log.Logger {
	if flagLogFile == "" {
		return log.New(io.Discard)
	}
	return logger
}
