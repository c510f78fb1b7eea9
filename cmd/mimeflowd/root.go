package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mailchannels/mimeflow/log"
)

var rootCmd = &cobra.Command{
	Use:   "mimeflowd",
	Short: "streaming MIME parser and quoted-printable downgrader",
	Long: `mimeflowd feeds a message through the mimeparse record-driven
state machine, either to inspect its MIME structure or to rewrite an
8-bit/binary message into 7-bit quoted-printable form.`,
	Run: nil,
}

var (
	verbose bool

	mainlog log.Logger
)

func init() {
	var err error
	if mainlog, err = log.GetLogger(log.OutputStderr.String()); err != nil {
		mainlog.WithError(err).Error("failed creating the startup logger")
	}

	cobra.OnInitialize()
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print out more debug information")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		mainlog.WithError(err).Fatal("mimeflowd exited with an error")
	}
}
