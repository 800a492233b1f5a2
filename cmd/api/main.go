package main

import (
	"context"
	"os"

	"github.com/villageedu/api/internal/pkg/logger"
	"github.com/villageedu/api/internal/server"
)

// @title Village Edu API
// @version 1.0
// @description Course catalog, enrollment, contact intake and analytics API for Village Edu

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
