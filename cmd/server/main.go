// Command server runs the HTTP conversion API.
package main

import (
	"fmt"
	"log"

	"pwfconv/internal/config"
	"pwfconv/internal/handler"
	"pwfconv/internal/router"
	"pwfconv/internal/schema"
	"pwfconv/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := schema.Load(cfg.Schema.Path)
	if err != nil {
		return fmt.Errorf("failed to load column schema: %w", err)
	}

	convertSvc := service.NewConvertService(reg, &cfg.Convert)

	convertH := handler.NewConvertHandler(convertSvc, cfg.Convert.DefaultFormat)
	healthH := handler.NewHealthHandler()

	r := router.Setup(convertH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
