package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/rs/zerolog"
)

// Lists the state documents stored in PostgreSQL with their version and size.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Connected to database: %s\n", dbName)

	rows, err := pool.Query(ctx, `
		SELECT key, version, octet_length(body::text), updated_at
		FROM state_documents
		ORDER BY key
	`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	fmt.Println("\nStored documents:")
	for rows.Next() {
		var (
			key       string
			version   int
			size      int
			updatedAt time.Time
		)
		if err := rows.Scan(&key, &version, &size, &updatedAt); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  - %-10s v%d %6d bytes  %s\n", key, version, size, updatedAt.Format(time.RFC3339))
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Rows failed: %v\n", err)
		os.Exit(1)
	}
}
