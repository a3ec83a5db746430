package main

import (
	"fmt"
	"log"

	"bakery-commerce-platform/internal/config"
	"bakery-commerce-platform/internal/database"
	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
)

type seedVariant struct {
	name  string
	price int // cents
	stock int
}

type seedProduct struct {
	name        string
	description string
	category    string
	variants    []seedVariant
}

var catalog = []seedProduct{
	{
		name:        "Sourdough Loaf",
		description: "Naturally leavened sourdough with a 48-hour cold ferment.",
		category:    "bread",
		variants: []seedVariant{
			{name: "Whole", price: 850, stock: 20},
			{name: "Half", price: 450, stock: 30},
		},
	},
	{
		name:        "Baguette",
		description: "Classic French baguette, baked twice daily.",
		category:    "bread",
		variants: []seedVariant{
			{name: "Single", price: 350, stock: 40},
			{name: "Pack of 3", price: 950, stock: 15},
		},
	},
	{
		name:        "Butter Croissant",
		description: "Laminated with cultured butter, 27 layers.",
		category:    "pastry",
		variants: []seedVariant{
			{name: "Single", price: 400, stock: 50},
			{name: "Box of 6", price: 2200, stock: 12},
		},
	},
	{
		name:        "Cinnamon Roll",
		description: "Brioche dough, cinnamon sugar and cream cheese icing.",
		category:    "pastry",
		variants: []seedVariant{
			{name: "Single", price: 475, stock: 36},
			{name: "Box of 4", price: 1700, stock: 10},
		},
	},
	{
		name:        "Chocolate Cake",
		description: "Dark chocolate layer cake with ganache.",
		category:    "cake",
		variants: []seedVariant{
			{name: "6 inch", price: 2800, stock: 6},
			{name: "8 inch", price: 4200, stock: 4},
			{name: "Slice", price: 650, stock: 24},
		},
	},
	{
		name:        "Rye Bread",
		description: "Dense Scandinavian-style rye with caraway seeds.",
		category:    "bread",
		variants: []seedVariant{
			{name: "Whole", price: 750, stock: 14},
		},
	},
}

func main() {
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

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repositories.NewProductRepository(db.DB)

	for _, sp := range catalog {
		product, err := productRepo.Create(&models.ProductCreateRequest{
			Name:        sp.name,
			Description: sp.description,
			Category:    sp.category,
		})
		if err != nil {
			log.Fatalf("Failed to create product %q: %v", sp.name, err)
		}

		for _, sv := range sp.variants {
			if _, err := productRepo.CreateVariant(product.ID, &models.VariantCreateRequest{
				Name:  sv.name,
				Price: sv.price,
				Stock: sv.stock,
			}); err != nil {
				log.Fatalf("Failed to create variant %q for %q: %v", sv.name, sp.name, err)
			}
		}

		fmt.Printf("Seeded %s with %d variants\n", sp.name, len(sp.variants))
	}

	fmt.Println("Catalog seeding completed")
}
