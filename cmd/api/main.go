package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"spot-lcoe/internal/api/handlers"
	"spot-lcoe/internal/api/middleware"
	"spot-lcoe/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Base configuration shared by all requests; per-request params override it.
	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded configuration from %s", path)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())

	analysisHandler := handlers.NewAnalysisHandler(cfg)
	plantHandler := handlers.NewPlantHandler()
	datasetHandler := handlers.NewDatasetHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/hours", analysisHandler.ComputeHours)
		api.POST("/lcoe", analysisHandler.ComputeLCOE)
		api.POST("/sweep", analysisHandler.RunSweep)

		api.GET("/plants", plantHandler.ListPlants)
		api.GET("/datasets", datasetHandler.ListDatasets)
	}

	// The dashboard frontend runs on its own origin during development.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := http.ListenAndServe(addr, corsHandler.Handler(router)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}
