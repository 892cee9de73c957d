// @title BKT Predictor API
// @version 1.0
// @description HTTP service exposing a Bayesian Knowledge Tracing model for adaptive learning tracks.

// @host localhost:8001
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"bkt_predictor/internal/app"
	"bkt_predictor/internal/config"
	"bkt_predictor/pkg/logger"
	"flag"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
