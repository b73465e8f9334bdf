package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zarghol/zpack/internal/compare"
)

func newStatCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stat [file]",
		Short: "Compare compression levels and codecs",
		Long:  "Compress the input at every level with every framing, then with other codecs, and print the sizes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			levels, err := compare.Levels(data)
			if err != nil {
				return err
			}
			report, err := compare.Run(data)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Levels []compare.Result `json:"levels"`
					*compare.Report
				}{levels, report})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "input\t%d bytes\testimate %.3f\tentropy %d bytes\t\n",
				report.InputSize, report.Estimate, (report.EntropyBits+7)/8)
			fmt.Fprintln(tw, "codec\tlevel\tsize\tratio\ttime\t")
			for _, r := range append(levels, report.Results...) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%v\t\n", r.Codec, r.Level, r.Size, r.Ratio, r.Duration)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")
	return cmd
}
