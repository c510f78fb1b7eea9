package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailchannels/mimeflow/config"
	"github.com/mailchannels/mimeflow/diag"
	"github.com/mailchannels/mimeflow/mimeparse"
	"github.com/mailchannels/mimeflow/recordfeed"
)

var (
	parseConfigPath string
	parseStats      bool

	parseCmd = &cobra.Command{
		Use:   "parse [file]",
		Short: "parse a MIME message and print its structure",
		Long: `parse feeds a message (from a file argument, or stdin if none is
given) through the mimeparse state machine and prints one line per
header and body record it emits.`,
		Run: runParse,
	}
)

func init() {
	parseCmd.PersistentFlags().StringVarP(&parseConfigPath, "config", "c",
		"", "path to a mimeflowd JSON config file")
	parseCmd.PersistentFlags().BoolVar(&parseStats, "stats", false,
		"print the deepest multipart nesting level (boundary stack depth) reached")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	cfg := config.Default()
	if parseConfigPath != "" {
		if err := config.ReadConfig(parseConfigPath, cfg); err != nil {
			mainlog.WithError(err).Fatal("error while reading config")
		}
	}

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
	sinks := rec.Wrap(reportSinks(os.Stdout))
	p := mimeparse.NewParser(sinks, cfg.Options(), cfg.Tunables(), nil, nil)

	driveErr := recordfeed.Drive(in, p)
	if pe, ok := driveErr.(*mimeparse.Error); ok {
		rec.NoteErrors(pe.Bits)
		mainlog.WithError(pe).Warn("message had parse errors")
	} else if driveErr != nil {
		mainlog.WithError(driveErr).Fatal("error while reading message")
	}

	if parseStats {
		fmt.Fprintf(os.Stdout, "max nesting seen: %d\n", p.MaxNestingSeen())
	}
}
