package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zarghol/zpack/checksum"
)

// sumWriter feeds everything written to it into a checksum.
type sumWriter struct {
	checksum.Checksum
}

func (w sumWriter) Write(p []byte) (int, error) {
	w.Update(p)
	return len(p), nil
}

func newChecksumCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "checksum [file]",
		Short: "Print the Adler-32 or CRC-32 of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sum checksum.Checksum
			switch kind {
			case "adler32":
				sum = checksum.NewAdler32()
			case "crc32":
				sum = checksum.NewCRC32()
			default:
				return fmt.Errorf("unknown checksum %q, want adler32 or crc32", kind)
			}

			in, err := openInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			if _, err := io.Copy(sumWriter{sum}, in); err != nil {
				return err
			}
			cmd.Printf("%08x  %s\n", sum.Value(), displayName(in))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "adler32", "Checksum: adler32|crc32")
	return cmd
}
