package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/platform/tui"
)

var (
	flagCueOut    string
	flagCueBrowse bool
)

var cuesCmd = &cobra.Command{
	Use:   "cues [cue...]",
	Short: "List, export or audition sound cues",
	Long: `Lists the sound cues with their length. With --out every cue (or only
the ones named) is rendered to a WAV file. --browse opens an interactive
list that plays the selected cue; add --speaker to hear it.

Examples:
  tilearcade cues
  tilearcade cues --out ./wav
  tilearcade cues --out ./wav level-up topout
  tilearcade cues --browse --speaker`,
	RunE: runCues,
}

func init() {
	cuesCmd.Flags().StringVar(&flagCueOut, "out", "", "Directory to write WAV files into")
	cuesCmd.Flags().BoolVar(&flagCueBrowse, "browse", false, "Open the interactive cue browser")
	cuesCmd.Flags().BoolVar(&flagSpeaker, "speaker", false, "Play cues on the host audio device")
}

func runCues(cmd *cobra.Command, args []string) error {
	cues := audio.Cues()
	if len(args) > 0 {
		cues = cues[:0:0]
		for _, name := range args {
			c, err := audio.ParseCue(name)
			if err != nil {
				return err
			}
			cues = append(cues, c)
		}
	}

	if flagCueBrowse {
		sink, closeSink, err := openAudio(flagSpeaker)
		if err != nil {
			return err
		}
		defer closeSink()
		return tui.RunCues(sink, len(audio.Cues())+2)
	}

	out := cmd.OutOrStdout()
	if flagCueOut == "" {
		fmt.Fprintf(out, "  %-14s %6s  %s\n", "Cue", "Frames", "Length")
		fmt.Fprintf(out, "  %-14s %6s  %s\n", "---", "------", "------")
		for _, c := range cues {
			fmt.Fprintf(out, "  %-14s %6d  %s\n", c, len(audio.Envelope(c)), audio.Duration(c))
		}
		return nil
	}

	if err := os.MkdirAll(flagCueOut, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, c := range cues {
		path := filepath.Join(flagCueOut, c.String()+".wav")
		if err := exportCue(path, c); err != nil {
			return err
		}
		logger.Info("exported cue", "cue", c, "path", path)
	}
	return nil
}

func exportCue(path string, c audio.Cue) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := audio.ExportWAV(f, c, audio.DefaultSampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
