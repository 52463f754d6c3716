// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/grblocks/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by all subcommands.
type app struct {
	fs     afero.Fs
	logger *zap.Logger

	logLevel string
	devMode  bool
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "grblocks",
		Short:         "Streaming signal processing blocks",
		Long:          "Runs AGC, SNR estimation and IIR filtering blocks over audio and I/Q files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(a.logLevel, a.devMode)
			if err != nil {
				return err
			}
			a.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&a.devMode, "dev", "d", false, "human readable logs")

	cmd.AddCommand(a.blocksCmd(), a.runCmd(), a.freqzCmd())
	return cmd
}
