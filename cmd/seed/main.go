package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/adhivedhanlr-maker/ecommerce-backend/config"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/model"
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/db"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Seeds the admin account and the base catalogue. An optional xlsx
// argument bulk-imports products:
//
//	go run cmd/seed/main.go [products.xlsx]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gdb := db.GetDB()

	admin, err := seedAdmin(gdb)
	if err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	categories, err := seedCategories(gdb)
	if err != nil {
		log.Fatal("Failed to seed categories:", err)
	}
	fmt.Printf("Seeded %d categories\n", len(categories))

	if len(os.Args) > 1 {
		count, err := importProductsFromXLSX(gdb, os.Args[1], admin.ID, categories)
		if err != nil {
			log.Fatal("Failed to import products:", err)
		}
		fmt.Printf("Imported %d products from %s\n", count, os.Args[1])
	}

	fmt.Println("Seeding completed successfully!")
}

func seedAdmin(gdb *gorm.DB) (*model.User, error) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@storefront.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	var existing model.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("Admin account %s already exists\n", email)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := gdb.Create(admin).Error; err != nil {
		return nil, err
	}

	fmt.Printf("Created admin account %s\n", email)
	return admin, nil
}

func seedCategories(gdb *gorm.DB) (map[string]uint, error) {
	seeds := []model.Category{
		{Name: "Electronics", Slug: "electronics", Description: "Phones, laptops and accessories"},
		{Name: "Fashion", Slug: "fashion", Description: "Clothing and footwear"},
		{Name: "Home & Kitchen", Slug: "home-kitchen", Description: "Appliances and decor"},
		{Name: "Books", Slug: "books", Description: "Fiction and non-fiction"},
		{Name: "Grocery", Slug: "grocery", Description: "Everyday essentials"},
	}

	ids := make(map[string]uint, len(seeds))
	for _, seed := range seeds {
		var category model.Category
		err := gdb.Where("slug = ?", seed.Slug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = seed
			if err := gdb.Create(&category).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		ids[category.Slug] = category.ID
	}
	return ids, nil
}

// importProductsFromXLSX reads rows of (name, description, price, stock,
// category slug) and creates them under the admin account.
func importProductsFromXLSX(gdb *gorm.DB, filePath string, sellerID uint, categories map[string]uint) (int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, err
	}

	var products []model.Product
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) < 5 {
			fmt.Printf("Skipping row %d: expected 5 columns, got %d\n", i+1, len(row))
			continue
		}

		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil || price <= 0 {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+1, row[2])
			continue
		}
		stock, err := strconv.Atoi(row[3])
		if err != nil || stock < 0 {
			fmt.Printf("Skipping row %d: invalid stock %q\n", i+1, row[3])
			continue
		}
		categoryID, ok := categories[row[4]]
		if !ok {
			fmt.Printf("Skipping row %d: unknown category %q\n", i+1, row[4])
			continue
		}

		products = append(products, model.Product{
			Name:          row[0],
			Description:   row[1],
			Price:         price,
			StockQuantity: stock,
			IsActive:      true,
			CategoryID:    categoryID,
			SellerID:      sellerID,
		})
	}

	if len(products) == 0 {
		return 0, nil
	}
	if err := gdb.CreateInBatches(products, 500).Error; err != nil {
		return 0, err
	}
	return len(products), nil
}
