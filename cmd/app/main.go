package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockcast",
		Short: "Monthly stock price forecasts with a buy/sell call",
		Long: `stockcast fetches a month of daily closes for a ticker, fits several
regression models on them and recommends Buy or Sell from the forecast.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "config file path (empty for built-in defaults)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(predictCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
