package main

import (
	"context"
	"flag"
	"log"

	"albi-mall-assistant-be/internal/config"
	"albi-mall-assistant-be/internal/model"
	"albi-mall-assistant-be/internal/repository/implementation"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/database"
)

func main() {
	seed := flag.Bool("seed", true, "upsert catalog products after migrating")
	source := flag.String("from", "", "JSON catalog file to seed from (defaults to the bundled sample)")
	flag.Parse()

	// 1. Load configuration (.env aware)
	cfg := config.Load()
	if cfg.Catalog.DBConnection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Catalog.DBConnection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	log.Println("Step 1: Running AutoMigrate for products...")
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_category_lower ON products (LOWER(category));`,
		`CREATE INDEX IF NOT EXISTS idx_products_subcategory_lower ON products (LOWER(subcategory));`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute index SQL: %v", err)
		}
	}

	if !*seed {
		log.Println("✅ Success: Schema migrated, seeding skipped.")
		return
	}

	// 3. Seed
	var products []catalog.Product
	if *source != "" {
		products, err = catalog.LoadFile(*source)
	} else {
		products, err = catalog.Sample()
	}
	if err != nil {
		log.Fatalf("Error: Failed to read catalog: %v", err)
	}

	log.Printf("Step 2: Upserting %d products...", len(products))
	repo := implementation.NewProductRepository(db)
	if err := repo.UpsertMany(context.Background(), products); err != nil {
		log.Fatalf("Error: Seeding failed: %v", err)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		log.Fatalf("Error: Count failed: %v", err)
	}
	log.Printf("✅ Success: Database migrated, %d products in catalog.", count)
}
