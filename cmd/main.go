package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/10kkyvl/planetarium-api/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment.")
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
