package main

import (
	"log"
	"os"

	"backend/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	engine := handler.NewInsightEngine()

	port := os.Getenv("INSIGHTS_PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("Insights service listening on :%s", port)
	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
