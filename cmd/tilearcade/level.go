package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
	"github.com/vovakirdan/tilearcade/internal/registry"
)

var flagOrbit bool

var levelCmd = &cobra.Command{
	Use:   "level <game>",
	Short: "Print a game's generated level",
	Long: `Builds the game from the active config and prints its level grid:
'#' walls, 'o' collectibles, '.' empty tiles.

Examples:
  tilearcade level heartman
  tilearcade level snake --orbit`,
	Args: cobra.ExactArgs(1),
	RunE: runLevel,
}

func init() {
	levelCmd.Flags().BoolVar(&flagOrbit, "orbit", false, "Also print the generator's transient and period")
}

// leveled is implemented by games that expose their playfield.
type leveled interface {
	Level() *level.Grid
}

func runLevel(cmd *cobra.Command, args []string) error {
	game, err := registry.Create(args[0], cfg)
	if err != nil {
		return err
	}
	lg, ok := game.(leveled)
	if !ok {
		return fmt.Errorf("%s has no level to print", args[0])
	}
	grid := lg.Level()
	geom := grid.Geometry()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s  %dx%d  offset (%d,%d)\n\n", game.Title(), geom.RowWidth, geom.Rows, geom.OffsetX, geom.OffsetY)
	fmt.Fprint(out, grid.String())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "walls %d  collectibles %d  empty %d\n",
		grid.Count(level.Wall), grid.Count(level.Collectible), grid.Count(level.Empty))

	if flagOrbit {
		transient, period := lfsr.Orbit(lfsr.InitialSeed)
		fmt.Fprintf(out, "seed %#04x  transient %d  period %d\n", uint16(lfsr.InitialSeed), transient, period)
	}
	return nil
}
