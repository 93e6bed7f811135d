package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "fraudctl",
		Short:         "fraudctl - card fraud detection service and client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config/config.yaml", "config file path")
	rootCmd.PersistentFlags().String("api-url", "", "inference API base URL (overrides config)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(formCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(metricsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
