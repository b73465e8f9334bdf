// Command zpack compresses files with zpack's DEFLATE implementation and
// serves it over HTTP.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zpack",
		Short:         "DEFLATE, zlib and gzip compression",
		Long:          "zpack compresses data into raw DEFLATE, zlib or gzip streams, traces its match decisions and compares it with other codecs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newCompressCmd())
	rootCmd.AddCommand(newTraceCmd())
	rootCmd.AddCommand(newStatCmd())
	rootCmd.AddCommand(newChecksumCmd())
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
