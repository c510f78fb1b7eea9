package main

import (
	"github.com/spf13/cobra"

	mimeflow "github.com/mailchannels/mimeflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version info",
	Long:  `Every build of mimeflowd carries its version, commit, and build time.`,
	Run: func(cmd *cobra.Command, args []string) {
		logVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func logVersion() {
	mainlog.WithField("version", mimeflow.Version).
		WithField("commit", mimeflow.Commit).
		WithField("buildTime", mimeflow.BuildTime).
		Info("mimeflowd")
}
