package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL TRADING DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all farmers and customers")
	fmt.Println("  - Delete all purchases, sales and payments")
	fmt.Println("  - Delete all expenses, enquiries and ledger entries")
	fmt.Println("  - Delete all seasons and stock levels")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "mango_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "SET session_replication_role = 'replica'")
	if err != nil {
		log.Fatalf("Failed to disable foreign key checks: %v\n", err)
	}

	tables := []string{
		"ledger_entries",
		"stock_levels",
		"invoice_seqs",
		"payments",
		"sale_items",
		"sales",
		"purchase_items",
		"purchases",
		"expenses",
		"enquiries",
		"seasons",
		"package_sizes",
		"customers",
		"farmers",
		"settings",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  Cleared %s\n", table)
	}

	_, err = tx.Exec(ctx, "SET session_replication_role = 'origin'")
	if err != nil {
		log.Fatalf("Failed to enable foreign key checks: %v\n", err)
	}

	sequences := []string{
		"farmers_id_seq",
		"customers_id_seq",
		"seasons_id_seq",
		"package_sizes_id_seq",
		"purchases_id_seq",
		"purchase_items_id_seq",
		"sales_id_seq",
		"sale_items_id_seq",
		"payments_id_seq",
		"expenses_id_seq",
		"enquiries_id_seq",
		"ledger_entries_id_seq",
	}

	for _, seq := range sequences {
		_, err = tx.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq))
		if err != nil {
			log.Printf("Warning: Failed to reset sequence %s: %v\n", seq, err)
		}
	}
	fmt.Println("  Reset ID sequences")

	settings := []struct {
		key   string
		value string
	}{
		{"app_pin", "1234"},
		{"margin_per_dozen", "200"},
		{"business_name", "Mango Trading"},
	}

	for _, s := range settings {
		_, err = tx.Exec(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, NOW())`,
			s.key, s.value,
		)
		if err != nil {
			log.Printf("Warning: Failed to create setting %s: %v\n", s.key, err)
		}
	}
	fmt.Println("  Created default settings")

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
	fmt.Println()
	fmt.Println("Default PIN: 1234")
	fmt.Println("Database is now ready for testing!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
