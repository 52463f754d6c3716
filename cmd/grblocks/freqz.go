// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/grblocks/filter"
	"github.com/spf13/cobra"
)

// `grblocks freqz` command
func (a *app) freqzCmd() *cobra.Command {
	var (
		ff, fb    []float64
		points    int
		oldstyle  bool
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "freqz",
		Short: "Prints the magnitude response of an IIR filter",
		Long:  "Prints the magnitude response in dB of an IIR filter from 0 to half the sample rate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := filter.FrequencyResponse(ff, fb, points, oldstyle)
			if err != nil {
				return err
			}
			db := filter.MagnitudeDB(h, normalize)

			w := cmd.OutOrStdout()
			for i := 0; i <= points/2; i++ {
				fmt.Fprintf(w, "%.4f\t%.2f\n", float64(i)/float64(points), db[i])
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&ff, "ff", nil, "feed-forward taps")
	cmd.Flags().Float64SliceVar(&fb, "fb", []float64{1}, "feedback taps")
	cmd.Flags().IntVarP(&points, "points", "n", 512, "number of frequency points over the full circle")
	cmd.Flags().BoolVar(&oldstyle, "oldstyle", true, "feedback taps are added rather than subtracted")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "shift the peak to 0 dB")
	_ = cmd.MarkFlagRequired("ff")
	return cmd
}
