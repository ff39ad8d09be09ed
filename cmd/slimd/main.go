package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slimd",
	Short: "SLIM protocol server and test client",
	Long: `slimd hosts fixtures behind the SLIM line-oriented RPC protocol and
ships a small client for exercising a running server from the shell.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "slimd version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newVersionCmd())
}
