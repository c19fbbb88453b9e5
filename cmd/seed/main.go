package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/minhvu/devconnect/pkg/auth"
)

// Seeds a user row and prints a signed token for local API calls.
func main() {
	fmt.Println("seeding user into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")
	password := os.Getenv("SEED_PASSWORD")
	jwtSecret := os.Getenv("JWT_SECRET")

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	userID := uuid.New()
	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = $3, password_hash = $4
		RETURNING id
	`
	if err := pool.QueryRow(context.Background(), query, userID, email, name, hash).Scan(&userID); err != nil {
		log.Fatalf("cannot seed user: %v", err)
	}

	token, err := auth.NewJWTService(jwtSecret, 24*time.Hour).GenerateToken(userID)
	if err != nil {
		log.Fatalf("cannot generate token: %v", err)
	}

	fmt.Printf("seeded user '%s' (id %s)\n", email, userID)
	fmt.Printf("x-auth-token: %s\n", token)
}
