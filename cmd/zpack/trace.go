package main

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/zarghol/zpack"
	"github.com/zarghol/zpack/flate"
)

func newTraceCmd() *cobra.Command {
	var level int
	var blockSize int
	cmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Show the matches chosen at a compression level",
		Long:  "Print the input with every match the compressor chooses replaced by <length,distance>. A literal < is printed as <<.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			out := bufio.NewWriter(cmd.OutOrStdout())
			var stats zpack.Stats
			w := &zpack.Writer{
				Dest:        out,
				MatchFinder: flate.NewMatchFinder(level),
				Encoder:     zpack.TextEncoder{},
				BlockSize:   blockSize,
				Stats:       &stats,
			}
			if _, err := io.Copy(w, in); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return err
			}

			cmd.PrintErrf("\n%d literals, %d matches covering %d bytes, longest %d, farthest %d\n",
				stats.Literals, stats.Matches, stats.MatchedBytes, stats.LongestMatch, stats.FarthestBack)
			return nil
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", flate.DefaultCompression, "Compression level 0-9, -1 for the default")
	cmd.Flags().IntVar(&blockSize, "block-size", 1<<16, "Bytes handed to the match finder at once")
	return cmd
}
