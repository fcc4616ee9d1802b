package main

import (
	"log"

	"energy-dashboard/confs"
	"energy-dashboard/db"
	"energy-dashboard/server"

	"go.uber.org/zap"
)

func main() {
	// load config
	if err := confs.LoadConfig(); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// connect to database Postgres
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// run server
	srv := server.NewServer(database, logger)
	srv.Start()
}
