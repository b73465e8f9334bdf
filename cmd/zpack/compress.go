package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/zarghol/zpack/flate"
)

type compressOptions struct {
	level      int
	wrap       string
	strategy   string
	windowBits int
	memLevel   int
	dict       string
	output     string
}

func newCompressCmd() *cobra.Command {
	var opts compressOptions
	cmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "Compress a file or standard input",
		Long:  "Compress a file, or standard input when the file is - or missing, into a raw DEFLATE, zlib or gzip stream.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, args, &opts)
		},
	}
	cmd.Flags().IntVarP(&opts.level, "level", "l", flate.DefaultCompression, "Compression level 0-9, -1 for the default")
	cmd.Flags().StringVarP(&opts.wrap, "wrap", "w", "zlib", "Framing: raw|zlib|gzip")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "default", "Strategy: default|filtered|huffman")
	cmd.Flags().IntVar(&opts.windowBits, "window-bits", 15, "Base two logarithm of the window size, 9-15")
	cmd.Flags().IntVar(&opts.memLevel, "mem-level", 8, "Memory level, 1-9")
	cmd.Flags().StringVar(&opts.dict, "dict", "", "Preset dictionary file (raw and zlib only)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default standard output)")
	return cmd
}

func (opts *compressOptions) config(in *input) (flate.Config, error) {
	wrap, err := flate.ParseWrap(opts.wrap)
	if err != nil {
		return flate.Config{}, err
	}
	strategy, err := flate.ParseStrategy(opts.strategy)
	if err != nil {
		return flate.Config{}, err
	}
	cfg := flate.Config{
		Level:      opts.level,
		WindowBits: opts.windowBits,
		MemLevel:   opts.memLevel,
		Strategy:   strategy,
		Wrap:       wrap,
	}
	if wrap == flate.GZIP && in.name != "" {
		hdr := flate.NewHeader()
		hdr.Name = in.name
		hdr.ModTime = in.modTime
		cfg.Header = hdr
	}
	return cfg, cfg.Validate()
}

// createOutput opens the file named by -o.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func runCompress(cmd *cobra.Command, args []string, opts *compressOptions) error {
	in, err := openInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	cfg, err := opts.config(in)
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	var dict []byte
	if opts.dict != "" {
		if dict, err = os.ReadFile(opts.dict); err != nil {
			return fmt.Errorf("reading dictionary: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	var f io.WriteCloser
	if opts.output != "" {
		if f, err = createOutput(opts.output); err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	zw, err := flate.NewWriterDict(out, cfg, dict)
	if err != nil {
		return err
	}

	var src io.Reader = in
	if opts.output != "" && in.size >= 0 {
		bar := pb.New64(in.size)
		bar.SetTemplate(pb.Full)
		bar.Set(pb.Bytes, true)
		bar.SetWriter(cmd.ErrOrStderr())
		bar.Start()
		defer bar.Finish()
		src = bar.NewProxyReader(in)
	}

	if _, err := io.Copy(zw, src); err != nil {
		return fmt.Errorf("compressing %s: %w", displayName(in), err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", displayName(in), err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", opts.output, err)
		}
	}
	if opts.output != "" {
		cmd.PrintErrf("%s: %d -> %d bytes\n", displayName(in), zw.TotalIn(), zw.TotalOut())
	}
	return nil
}

func displayName(in *input) string {
	if in.name == "" {
		return "stdin"
	}
	return in.name
}
