package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/audio/hostspeaker"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/platform/tui"
	"github.com/vovakirdan/tilearcade/internal/registry"
)

var flagSpeaker bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or pick one from a menu.

Controls:
  Arrows/WASD/HJKL - Move
  Space/Z          - A
  X                - B
  Enter            - Start
  Ctrl+S           - Screenshot
  ?                - Help
  Q/Ctrl+C         - Quit

Examples:
  tilearcade play
  tilearcade play heartman
  tilearcade play snake --speaker
  tilearcade play heartman_plus --config ./my-arcade.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSpeaker, "speaker", false, "Play sound cues on the host audio device")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; use 'tilearcade run' for headless play")
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var gameID string
	if len(args) == 1 {
		gameID = args[0]
	} else {
		id, err := tui.RunMenu(width, height)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if id == "" {
			return nil // user quit
		}
		gameID = id
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'tilearcade list' to see available games", gameID)
	}

	game, err := registry.Create(gameID, cfg)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	sink, closeSink, err := openAudio(flagSpeaker)
	if err != nil {
		return err
	}
	defer closeSink()

	log := uiLogger().With("game", gameID)
	log.Info("starting", "frame_rate", cfg.Console.FrameRate, "speaker", flagSpeaker)

	err = tui.Run(game, tui.Options{
		FrameRate:     cfg.Console.FrameRate,
		HoldFrames:    cfg.Console.HoldFrames,
		QueueCapacity: cfg.Console.QueueCapacity,
		Audio:         sink,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	st := game.State()
	log.Info("finished", "score", st.Score, "remaining", st.Remaining, "game_over", st.GameOver)
	return nil
}

// openAudio returns the host speaker when asked for one, otherwise a silent
// sequencer that still tracks cue progress.
func openAudio(useSpeaker bool) (hw.AudioSink, func(), error) {
	if !useSpeaker {
		return audio.NewSequencer(), func() {}, nil
	}
	sp, err := hostspeaker.New(audio.DefaultSampleRate)
	if err != nil {
		return nil, nil, err
	}
	return sp, sp.Close, nil
}
