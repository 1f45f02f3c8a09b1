// Package cli implements the uwt command tree.
package cli

import (
	"os"
	"os/signal"

	"github.com/Gobert4/ultrawatchtogether/internal/ui"
	"github.com/Gobert4/ultrawatchtogether/internal/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "uwt",
	Short:   "Host and join watch-together rooms from the terminal",
	Long:    `uwt is the terminal client for the UltraWatch Together relay. It opens rooms, joins running sessions as a viewer, and carries the room chat while playback negotiation happens between browsers.`,
	Version: version.String(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
