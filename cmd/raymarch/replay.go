package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/replay"
	"github.com/spf13/cobra"
)

var (
	replayWorkers int
	replayOutDir  string
)

var replayCmd = &cobra.Command{
	Use:   "replay <track.toml>...",
	Short: "Replay recorded input tracks headlessly",
	Long: `Replay one or more recorded input tracks without a window and print the camera state after
every frame as TOML. Tracks are replayed in parallel; output is deterministic, so it can be
checked in as a golden file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVarP(&replayWorkers, "workers", "w", runtime.NumCPU(), "maximum tracks replayed at once")
	replayCmd.Flags().StringVarP(&replayOutDir, "out", "o", "", "write <track>.samples.toml files here instead of stdout")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	tracks := make([]replay.Track, 0, len(args))
	for _, path := range args {
		t, err := readTrack(path)
		if err != nil {
			return err
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		tracks = append(tracks, t)
	}

	results, err := replay.RunBatch(tracks, replayWorkers)
	if err != nil {
		return err
	}

	if replayOutDir == "" {
		return writeSamples(cmd.OutOrStdout(), tracks, results)
	}

	if err := os.MkdirAll(replayOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for i, t := range tracks {
		path := filepath.Join(replayOutDir, t.Name+".samples.toml")
		if err := writeSamplesFile(path, t.Name, results[i]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d frames -> %s\n", t.Name, len(results[i]), path)
	}
	return nil
}

func readTrack(path string) (replay.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return replay.Track{}, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()

	t, err := replay.DecodeTrack(f)
	if err != nil {
		return replay.Track{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeSamples(w io.Writer, tracks []replay.Track, results [][]replay.Sample) error {
	for i, t := range tracks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := replay.EncodeSamples(w, t.Name, results[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeSamplesFile(path, name string, samples []replay.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create samples file: %w", err)
	}
	if err := replay.EncodeSamples(f, name, samples); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close samples file: %w", err)
	}
	return nil
}
