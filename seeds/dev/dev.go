package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/argon2"
	"gopkg.in/yaml.v3"
)

const (
	devSupplierUserID    = "00000000-0000-4000-8000-000000000001"
	devSupplierProfileID = "00000000-0000-4000-8000-000000000101"
	devBuyerUserID       = "00000000-0000-4000-8000-000000000002"
	devBuyerProfileID    = "00000000-0000-4000-8000-000000000102"
)

type catalogFile struct {
	Categories []categoryEntry `yaml:"categories"`
	Products   []productEntry  `yaml:"products"`
}

type categoryEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type productEntry struct {
	ID                     string   `yaml:"id"`
	CategoryID             string   `yaml:"category_id"`
	Name                   string   `yaml:"name"`
	Description            string   `yaml:"description"`
	PriceRange             string   `yaml:"price_range"`
	MinOrderQuantity       int      `yaml:"min_order_quantity"`
	CountryOfOrigin        string   `yaml:"country_of_origin"`
	CertificationStandards []string `yaml:"certification_standards"`
	Tags                   []string `yaml:"tags"`
	Status                 string   `yaml:"status"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding marketplace database...")

	fmt.Println("  Inserting supplier account...")
	if err := seedAccount(ctx, pool, account{
		userID:    devSupplierUserID,
		profileID: devSupplierProfileID,
		email:     "supplier@weaveline.test",
		phone:     "+911100000001",
		userType:  "supplier",
		company:   "Weaveline Exports",
		city:      "Coimbatore",
		rating:    4.4,
		verified:  true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "seed supplier: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Inserting buyer account...")
	if err := seedAccount(ctx, pool, account{
		userID:    devBuyerUserID,
		profileID: devBuyerProfileID,
		email:     "buyer@northtrade.test",
		phone:     "+911100000002",
		userType:  "buyer",
		company:   "NorthTrade Imports",
		city:      "Delhi",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "seed buyer: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Seeding catalog from YAML...")
	if err := seedCatalog(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Seed complete!")
	fmt.Println()
	fmt.Println("  Supplier login: supplier@weaveline.test / password")
	fmt.Println("  Buyer login:    buyer@northtrade.test / password")
}

type account struct {
	userID    string
	profileID string
	email     string
	phone     string
	userType  string
	company   string
	city      string
	rating    float64
	verified  bool
}

func seedAccount(ctx context.Context, pool *pgxpool.Pool, a account) error {
	passwordHash, err := hashPassword("password")
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, phone, password_hash) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		a.userID, a.email, a.phone, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO profiles (id, user_id, user_type, company_name, city, rating, is_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET rating = EXCLUDED.rating, is_verified = EXCLUDED.is_verified`,
		a.profileID, a.userID, a.userType, a.company, a.city, a.rating, a.verified)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// seedCatalog reads seeds/dev/catalog.yaml and upserts categories and
// products. All seeded products belong to the dev supplier.
func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	// Resolve path relative to this source file so it works regardless of cwd.
	_, thisFile, _, _ := runtime.Caller(0)
	yamlPath := filepath.Join(filepath.Dir(thisFile), "catalog.yaml")

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("read catalog.yaml: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parse catalog.yaml: %w", err)
	}

	for _, c := range cf.Categories {
		fmt.Printf("    Upserting category %s (%s)\n", c.ID, c.Name)
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name, description)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description`,
			c.ID, c.Name, c.Description)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
	}

	for _, p := range cf.Products {
		fmt.Printf("    Upserting product %s (%s)\n", p.ID, p.Name)
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, supplier_id, category_id, name, description, price_range,
			   min_order_quantity, country_of_origin, certification_standards, tags, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   price_range = EXCLUDED.price_range,
			   status = EXCLUDED.status,
			   updated_at = now()`,
			p.ID, devSupplierProfileID, p.CategoryID, p.Name, p.Description, p.PriceRange,
			p.MinOrderQuantity, p.CountryOfOrigin, p.CertificationStandards, p.Tags, p.Status)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}

	return nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 3, 65536, 4, 32)

	return fmt.Sprintf("$argon2id$v=19$m=65536,t=3,p=4$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}
