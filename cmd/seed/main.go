// seed inserts a demo user, a handful of customers and invoices into the
// local dev database. Safe to re-run: every row has a deterministic id.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rishabhkalra96/invoice-dashboard/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "user@nextmail.com"
	seedPassword = "123456"
)

type customerSpec struct {
	name  string
	email string
}

var customers = []customerSpec{
	{"Delba de Oliveira", "delba@example.com"},
	{"Lee Robinson", "lee@example.com"},
	{"Hector Simpson", "hector@example.com"},
	{"Amy Burns", "amy@example.com"},
	{"Balazs Orban", "balazs@example.com"},
}

type invoiceSpec struct {
	key      string
	customer string // customer email
	amount   int64  // cents
	status   string
	daysAgo  int
}

var invoices = []invoiceSpec{
	{"seed-001", "delba@example.com", 15795, "pending", 3},
	{"seed-002", "lee@example.com", 20348, "pending", 10},
	{"seed-003", "hector@example.com", 3040, "paid", 14},
	{"seed-004", "amy-missing", 44800, "paid", 21}, // reassigned below
	{"seed-005", "balazs@example.com", 34577, "pending", 30},
	{"seed-006", "delba@example.com", 54246, "paid", 45},
	{"seed-007", "lee@example.com", 666, "pending", 60},
	{"seed-008", "hector@example.com", 32545, "paid", 75},
	{"seed-009", "amy@example.com", 1250, "paid", 90},
	{"seed-010", "balazs@example.com", 8546, "paid", 120},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Demo user
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, updated_at = NOW()`,
		stableID("user:"+seedEmail), seedEmail, string(hash),
	)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	// Customers
	customerIDs := make(map[string]string)
	for _, c := range customers {
		id := stableID("customer:" + c.email)
		_, err := pool.Exec(ctx, `
			INSERT INTO customers (id, name, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name`,
			id, c.name, c.email,
		)
		if err != nil {
			log.Fatalf("seed customer %s: %v", c.email, err)
		}
		customerIDs[c.email] = id
	}

	// Invoices
	inserted := 0
	for _, inv := range invoices {
		customerID, ok := customerIDs[inv.customer]
		if !ok {
			customerID = customerIDs[customers[0].email]
		}
		date := time.Now().UTC().AddDate(0, 0, -inv.daysAgo).Format("2006-01-02")
		tag, err := pool.Exec(ctx, `
			INSERT INTO invoices (id, customer_id, amount, status, date)
			VALUES ($1, $2, $3, $4, $5::date)
			ON CONFLICT (id) DO NOTHING`,
			stableID("invoice:"+inv.key), customerID, inv.amount, inv.status, date,
		)
		if err != nil {
			log.Fatalf("seed invoice %s: %v", inv.key, err)
		}
		inserted += int(tag.RowsAffected())
	}

	fmt.Printf("seeded 1 user, %d customers, %d new invoices\n", len(customers), inserted)
	fmt.Printf("login with %s / %s\n", seedEmail, seedPassword)
}

// stableID derives the same UUID for the same seed key on every run.
func stableID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
