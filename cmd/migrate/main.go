package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"bakery-commerce-platform/internal/config"
	"bakery-commerce-platform/internal/database"
)

func main() {
	var (
		status = flag.Bool("status", false, "Show migration status")
		up     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	switch {
	case *status:
		if err := db.GetMigrationStatus(); err != nil {
			log.Fatal("Failed to get migration status:", err)
		}
	case *up:
		if err := db.RunMigrations(); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		fmt.Println("All migrations completed successfully")
	default:
		fmt.Println("Usage:")
		fmt.Println("  migrate -status   Show migration status")
		fmt.Println("  migrate -up       Run pending migrations")
		os.Exit(1)
	}
}
