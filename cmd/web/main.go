package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bluebirdlabs/lyrictype/internal/web/app"
)

func main() {
	// Local development reads settings from a .env file; missing is fine.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
