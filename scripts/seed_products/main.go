package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// seedProducts loads a sample catalogue into the configured database.
// Existing ids are skipped, so the script can be rerun safely.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to migrate database: %v\n", err)
		os.Exit(1)
	}

	repo := repository.NewProductRepository(pool, logger)

	catalogue := []model.Product{
		{ID: "P001", Name: "Nasi Goreng Spesial", Category: "Makanan", Price: 25000},
		{ID: "P002", Name: "Mie Ayam Bakso", Category: "Makanan", Price: 20000},
		{ID: "P003", Name: "Sate Ayam", Category: "Makanan", Price: 30000},
		{ID: "P004", Name: "Es Teh Manis", Category: "Minuman", Price: 5000},
		{ID: "P005", Name: "Kopi Susu Gula Aren", Category: "Minuman", Price: 18000},
		{ID: "P006", Name: "Pisang Goreng", Category: "Camilan", Price: 12000},
	}

	created := 0
	for _, p := range catalogue {
		existing, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup of %s failed: %v\n", p.ID, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("Skipping %s (already exists)\n", p.ID)
			continue
		}

		p.OriginalPrice = p.Price
		p.IsAvailable = true
		p.CreatedAt = time.Now()
		if err := repo.Create(ctx, &p); err != nil {
			fmt.Fprintf(os.Stderr, "Create of %s failed: %v\n", p.ID, err)
			os.Exit(1)
		}
		created++
		fmt.Printf("Created %s: %s\n", p.ID, p.Name)
	}

	fmt.Printf("Seeded %d of %d products\n", created, len(catalogue))
}
