package main

import (
	"github.com/wfunc/wordrush/config"
	"github.com/wfunc/wordrush/game"
	"github.com/wfunc/wordrush/logger"
	"github.com/wfunc/wordrush/persistence"
	"github.com/wfunc/wordrush/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// The word-catalog store is optional; the game itself never touches it.
	var store persistence.WordStore
	if cfg.Database.Enabled {
		store, err = persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
	}

	settings := game.Settings{
		TurnSeconds: cfg.Game.TurnSeconds,
		MinWords:    cfg.Game.MinWords,
		SkipEnabled: cfg.Game.SkipEnabled,
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(
		cfg.Server.HTTPAddress,
		cfg.Server.RPCAddress,
		cfg.Server.MetricsAddress,
		settings,
		store,
	)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
