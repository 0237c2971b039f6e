package main

import (
	"fmt"
	"os"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/api"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/app"
)

func main() {
	// Load configuration and build the engine
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Log.Sync()

	// Initialize handler
	handler := api.NewHandler(a.Aggregator, a.Log)

	// Setup routes
	router := api.SetupRoutes(handler, a.Log)

	// Start server
	addr := a.Config.APIAddr()
	a.Log.Infow("starting API server", "addr", addr)

	if err := router.Run(addr); err != nil {
		a.Log.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}
