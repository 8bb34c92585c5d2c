package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/gestionusuarios/admin-console/internal/mockapi"
	"github.com/gestionusuarios/admin-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true})
	log := logger.Get()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	port := os.Getenv("MOCKAPI_PORT")
	if port == "" {
		port = "8080"
	}

	srv := mockapi.New(secret, log)
	log.Info().Str("port", port).Msg("mock backend listening")
	if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
