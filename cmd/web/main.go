package main

import (
	"github.com/joho/godotenv"

	"jobportal_backend/internal/app"
)

func main() {
	// Missing .env is fine, real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	app.Run()
}
