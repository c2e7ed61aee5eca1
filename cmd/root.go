// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strix",
	Short: "Strix - SIP traffic capture and dissection",
	Long: `Strix captures network traffic, dissects protocol layers
(Ethernet, IP, UDP/TCP, TLS, WebSocket, SIP) and streams the resulting
packet view to the console or to live WebSocket subscribers.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yml",
		"config file path")

	rootCmd.AddCommand(startCmd)
}
