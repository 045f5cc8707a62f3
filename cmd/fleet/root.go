package main

import (
	"github.com/spf13/cobra"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "fleet",
	Short: "CityBike fleet analytics",
	Long:  "Cleans bike-share CSV exports, builds the linked fleet graph and serves analytics over HTTP.",
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Container, error) {
	return config.New()
}
