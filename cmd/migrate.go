package main

import (
	"log"

	"github.com/lelaut/snaplu.cc/config"
)

func main() {
	cfg := config.Load()
	db := config.SetupDatabase(cfg.DatabaseURL) // connects + migrates + seeds rarities
	_ = db
	log.Println("✅ Database migration completed successfully")
}
