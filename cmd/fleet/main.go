package main

import (
	"os"
)

// @title CityBike Fleet Analytics API
// @version 1.0
// @description API аналитики флота проката велосипедов

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
