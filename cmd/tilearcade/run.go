package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/console"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/games/heartman"
	"github.com/vovakirdan/tilearcade/internal/games/snake"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/registry"
	"github.com/vovakirdan/tilearcade/internal/video"
)

var (
	flagFrames   int
	flagScript   string
	flagRealtime bool
	flagNoScreen bool
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Run a game headless",
	Long: `Runs a game without a terminal UI for a fixed number of frames and
prints its final state, the console counters and the screen.

Input comes from an optional YAML script:

  frames:
    - at: 0
      hold: 30
      buttons: [right]
    - at: 40
      buttons: [down, a]

By default every frame is stepped synchronously (one refresh interrupt, then
one frame), which is fully deterministic. --realtime drives the console from
a wall-clock ticker at the configured frame rate instead.

Examples:
  tilearcade run heartman --frames 600
  tilearcade run snake --script moves.yaml
  tilearcade run heartman_plus --realtime --frames 120`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to run (0 = length of the script)")
	runCmd.Flags().StringVar(&flagScript, "script", "", "YAML input script")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Drive the console from a ticker instead of stepping")
	runCmd.Flags().BoolVar(&flagNoScreen, "no-screen", false, "Do not print the final screen")
}

func runRun(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	game, err := registry.Create(gameID, cfg)
	if err != nil {
		return err
	}

	var input hw.Input = hw.Held(0)
	frames := flagFrames
	if flagScript != "" {
		script, err := hw.LoadScript(flagScript)
		if err != nil {
			return err
		}
		input = script
		if frames == 0 {
			frames = script.Len()
		}
	}
	if frames <= 0 {
		return fmt.Errorf("nothing to run: --frames is %d", frames)
	}

	log := logger.With("game", gameID)
	ppu := video.New()
	con := console.New(console.Options{
		Display:       ppu,
		Input:         input,
		Audio:         audio.NewSequencer(),
		Transmitter:   ppu,
		QueueCapacity: cfg.Console.QueueCapacity,
		Logger:        log,
	})
	con.Init(game)

	start := time.Now()
	if flagRealtime {
		err = runRealtime(cmd.Context(), con, game, frames)
	} else {
		err = runStepped(con, game, frames)
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	printState(out, game, con.Stats(), elapsed)
	if !flagNoScreen {
		screen := core.NewScreen(video.Columns, video.Rows)
		ppu.Render(screen)
		fmt.Fprintln(out)
		fmt.Fprintln(out, screen.String())
	}

	if errors.Is(err, console.ErrHalted) {
		return err
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}

func runStepped(con *console.Console, g console.Game, frames int) error {
	for i := 0; i < frames; i++ {
		if err := con.Step(g); err != nil {
			return err
		}
	}
	// Flush the last frame's commands.
	con.VBlank()
	return nil
}

// runRealtime lets the console's own two contexts run for as long as frames
// take at the configured rate.
func runRealtime(ctx context.Context, con *console.Console, g console.Game, frames int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	period := time.Second / time.Duration(cfg.Console.FrameRate)
	ctx, cancel := context.WithTimeout(ctx, period*time.Duration(frames))
	defer cancel()

	ticker := time.NewTicker(period)
	defer ticker.Stop()
	return con.Run(ctx, g, ticker.C)
}

func printState(w io.Writer, g registry.Game, stats core.FrameStats, elapsed time.Duration) {
	st := g.State()
	fmt.Fprintf(w, "%s: score %d  remaining %d  game over %t\n", g.Title(), st.Score, st.Remaining, st.GameOver)
	fmt.Fprintf(w, "frames %d  vblanks %d  overruns %d  in %s\n",
		stats.Frames, stats.VBlanks, stats.Overruns, elapsed.Round(time.Millisecond))

	switch g := g.(type) {
	case *heartman.Game:
		fmt.Fprintf(w, "snapshot %+v\n", g.Snapshot())
	case *snake.Game:
		fmt.Fprintf(w, "snapshot %+v\n", g.Snapshot())
	}
}
