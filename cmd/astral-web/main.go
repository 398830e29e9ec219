package main

import (
	"log"

	"github.com/astral-cool/astral-web/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ astral-web failed to start: %v", err)
	}
}
