package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mailchannels/mimeflow/config"
	"github.com/mailchannels/mimeflow/diag"
	"github.com/mailchannels/mimeflow/mimeparse"
	"github.com/mailchannels/mimeflow/recordfeed"
)

var (
	downgradeConfigPath string

	downgradeCmd = &cobra.Command{
		Use:   "downgrade [file]",
		Short: "rewrite an 8bit/binary message into 7bit quoted-printable",
		Long: `downgrade feeds a message (from a file argument, or stdin if none is
given) through the mimeparse state machine with Downgrade forced on,
and writes the rewritten message to stdout.`,
		Run: runDowngrade,
	}
)

func init() {
	downgradeCmd.PersistentFlags().StringVarP(&downgradeConfigPath, "config", "c",
		"", "path to a mimeflowd JSON config file")
	rootCmd.AddCommand(downgradeCmd)
}

func runDowngrade(cmd *cobra.Command, args []string) {
	cfg := config.Default()
	if downgradeConfigPath != "" {
		if err := config.ReadConfig(downgradeConfigPath, cfg); err != nil {
			mainlog.WithError(err).Fatal("error while reading config")
		}
	}
	cfg.Downgrade = true

	in := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			mainlog.WithError(err).Fatalf("could not open %s", args[0])
		}
		defer f.Close()
		in = f
	}

	rec := &diag.Recorder{Logger: mainlog, Bus: diag.NewEventHandler()}
	sinks := rec.Wrap(writerSinks(os.Stdout))
	p := mimeparse.NewParser(sinks, cfg.Options(), cfg.Tunables(), nil, nil)

	driveErr := recordfeed.Drive(in, p)
	if pe, ok := driveErr.(*mimeparse.Error); ok {
		rec.NoteErrors(pe.Bits)
		mainlog.WithError(pe).Warn("message had parse errors")
	} else if driveErr != nil {
		mainlog.WithError(driveErr).Fatal("error while reading message")
	}
}
